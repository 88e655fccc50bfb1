package busevents

import (
	"encoding/json"
	"net/http"
)

func (s *Server) countExport(format string) {
	if s.metrics != nil {
		s.metrics.ExportsServed.WithLabelValues(format).Inc()
	}
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	s.maybeReload()
	data, _ := s.view()
	w.Header().Set("Content-Type", "application/json")

	type routeEntry struct {
		Key      string `json:"key"`
		RouteID  int    `json:"routeId"`
		RouteNo  string `json:"routeNo"`
		Name     string `json:"name"`
		Variants int    `json:"variants"`
	}
	keys := data.GetAllRouteKeys()
	out := struct {
		Count  int          `json:"count"`
		Routes []routeEntry `json:"routes"`
	}{Count: len(keys), Routes: make([]routeEntry, 0, len(keys))}
	for _, k := range keys {
		meta := data.GetRouteMeta(k)
		out.Routes = append(out.Routes, routeEntry{
			Key:      k,
			RouteID:  meta.RouteID,
			RouteNo:  meta.RouteNo,
			Name:     meta.RouteName,
			Variants: len(data.GetVariants(k)),
		})
	}
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.maybeReload()
	data, cache := s.view()
	w.Header().Set("Content-Type", "application/json")

	q := r.URL.Query()
	routeKey, err := ResolveRouteKey(q.Get("route"), data)
	if err != nil {
		w.WriteHeader(400)
		_, _ = w.Write(buildErrorPayload(err.Error()))
		return
	}
	routeVarID, err := parseNonNegativeInt(q.Get("variant"))
	if err != nil {
		w.WriteHeader(400)
		_, _ = w.Write(buildErrorPayload(err.Error()))
		return
	}
	if routeVarID < 0 {
		routeVarID = 0
	}
	if err := ensureVariantExists(routeKey, routeVarID, data); err != nil {
		w.WriteHeader(400)
		_, _ = w.Write(buildErrorPayload(err.Error()))
		return
	}

	buf, err := cache.GetSummaryJSON(routeKey, routeVarID, parseBoolParam(q.Get("preview")))
	if err != nil {
		w.WriteHeader(500)
		_, _ = w.Write(buildErrorPayload(err.Error()))
		return
	}
	_, _ = w.Write(buf)
}

func (s *Server) handleValidation(w http.ResponseWriter, r *http.Request) {
	s.maybeReload()
	_, cache := s.view()
	w.Header().Set("Content-Type", "application/json")

	buf, err := cache.GetValidationJSON()
	if err != nil {
		w.WriteHeader(500)
		_, _ = w.Write(buildErrorPayload(err.Error()))
		return
	}
	_, _ = w.Write(buf)
}

func (s *Server) handleNodesCSV(w http.ResponseWriter, r *http.Request) {
	s.maybeReload()
	_, cache := s.view()

	buf, err := cache.GetNodesCSV()
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(500)
		_, _ = w.Write(buildErrorPayload(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=\"node_table.csv\"")
	s.countExport("csv")
	_, _ = w.Write(buf)
}

func (s *Server) handleNodesJSON(w http.ResponseWriter, r *http.Request) {
	s.maybeReload()
	_, cache := s.view()
	w.Header().Set("Content-Type", "application/json")

	buf, err := cache.GetNodesJSON()
	if err != nil {
		w.WriteHeader(500)
		_, _ = w.Write(buildErrorPayload(err.Error()))
		return
	}
	s.countExport("json")
	_, _ = w.Write(buf)
}

func (s *Server) handleEstimatedTimetableJSON(w http.ResponseWriter, r *http.Request) {
	s.maybeReload()
	_, cache := s.view()
	w.Header().Set("Content-Type", "application/json")

	buf, err := cache.GetEstimatedTimetable("json")
	if err != nil {
		w.WriteHeader(500)
		_, _ = w.Write(buildErrorPayload(err.Error()))
		return
	}
	s.countExport("siri")
	_, _ = w.Write(buf)
}

func (s *Server) handleEstimatedTimetableXML(w http.ResponseWriter, r *http.Request) {
	s.maybeReload()
	_, cache := s.view()

	buf, err := cache.GetEstimatedTimetable("xml")
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(500)
		_, _ = w.Write(buildErrorPayload(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	s.countExport("sirixml")
	_, _ = w.Write(buf)
}

func (s *Server) handleTripUpdatesPB(w http.ResponseWriter, r *http.Request) {
	s.maybeReload()
	_, cache := s.view()

	buf, err := cache.GetTripUpdatesPB()
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(500)
		_, _ = w.Write(buildErrorPayload(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "application/x-protobuf")
	s.countExport("gtfsrt")
	_, _ = w.Write(buf)
}
