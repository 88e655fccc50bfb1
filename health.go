package busevents

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Status string `json:"status"`
	Routes int    `json:"routes"`
	Trips  int    `json:"trips"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	data, _ := s.view()
	w.Header().Set("Content-Type", "application/json")
	resp := healthResponse{
		Status: "ok",
		Routes: data.RouteCount(),
		Trips:  data.TripCount(),
	}
	_ = json.NewEncoder(w).Encode(resp)
}
