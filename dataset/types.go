package dataset

import "encoding/json"

// Stop is one serviced stop of a route variant.
type Stop struct {
	StopID int     `json:"StopId"`
	Name   string  `json:"Name"`
	Lat    float64 `json:"Lat"`
	Lng    float64 `json:"Lng"`
}

// Path is the driven polyline of a route variant, stored as parallel
// coordinate arrays exactly as the upstream API ships them.
type Path struct {
	Lat []float64 `json:"lat"`
	Lng []float64 `json:"lng"`
}

// Variant is one direction/branch of a route.
type Variant struct {
	RouteVarID   int    `json:"RouteVarId"`
	RouteVarName string `json:"RouteVarName"`
}

// Timetable binds a service timetable to the variant it runs on.
type Timetable struct {
	TimeTableID int `json:"TimeTableId"`
	RouteVarID  int `json:"RouteVarId"`
}

// Trip is one scheduled departure of a timetable. Start and end times stay
// raw ClockText because real dumps carry nulls and numbers where "HH:MM"
// strings belong.
type Trip struct {
	TripID    int       `json:"TripId"`
	StartTime ClockText `json:"StartTime"`
	EndTime   ClockText `json:"EndTime"`
}

// RouteMeta is the route-level metadata record. It is optional in the dump;
// missing records fall back to the route key (see Index.GetRouteMeta).
type RouteMeta struct {
	RouteID   int    `json:"RouteId"`
	RouteNo   string `json:"RouteNo"`
	RouteName string `json:"RouteName"`
	Type      string `json:"Type"`
}

// RouteRecord groups every capture of one route under its dataset key. Map
// keys inside are variant/timetable ids as decimal strings, mirroring the
// JSON shape.
type RouteRecord struct {
	Route      *RouteMeta        `json:"getroutebyid"`
	Variants   []Variant         `json:"getvarsbyroute"`
	Stops      map[string][]Stop `json:"getstopsbyvar"`
	Paths      map[string]Path   `json:"getpathsbyvar"`
	Timetables []Timetable       `json:"gettimetablebyroute"`
	Trips      map[string][]Trip `json:"gettripsbytimetable"`
}

// ClockText holds one raw timetable time value. Decoding never fails on
// scalar dirt: absent keys leave Present false, JSON null keeps Present
// false too, strings set IsString, and anything else (numbers, booleans)
// keeps its literal JSON text with IsString false. The validator turns
// these flags into issue categories instead of aborting the whole load.
type ClockText struct {
	Raw      string
	IsString bool
	Present  bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *ClockText) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*c = ClockText{}
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*c = ClockText{Raw: str, IsString: true, Present: true}
		return nil
	}
	*c = ClockText{Raw: s, Present: true}
	return nil
}

// String returns the raw text, which for non-string scalars is their JSON
// literal form.
func (c ClockText) String() string { return c.Raw }
