package busevents

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/bus-to-events/dataset"
)

type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

func parseNonNegativeInt(s string) (int, error) {
	if s == "" {
		return -1, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return -1, &QueryError{Msg: "Numeric parameter must be a non-negative integer."}
	}
	return v, nil
}

func parseBoolParam(s string) bool {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// ResolveRouteKey resolves a route argument to a dataset key. Accepts
// the dataset key itself or a route number ("D4").
func ResolveRouteKey(route string, data *dataset.Index) (string, error) {
	route = strings.TrimSpace(route)
	if route == "" {
		return "", &QueryError{Msg: "You must provide a route."}
	}
	if data.HasRoute(route) {
		return route, nil
	}
	for _, key := range data.GetAllRouteKeys() {
		if strings.EqualFold(data.GetRouteMeta(key).RouteNo, route) {
			return key, nil
		}
	}
	return "", &QueryError{Msg: "No such route: " + route}
}

// ensureVariantExists checks a requested variant id against the route's
// variants. Zero means "first variant" and is always accepted.
func ensureVariantExists(routeKey string, routeVarID int, data *dataset.Index) error {
	if routeVarID <= 0 {
		return nil
	}
	for _, v := range data.GetVariants(routeKey) {
		if v.RouteVarID == routeVarID {
			return nil
		}
	}
	return &QueryError{Msg: "No such variant: " + strconv.Itoa(routeVarID)}
}

func buildErrorPayload(msg string) []byte {
	type errBody struct {
		Error struct {
			Description string `json:"Description"`
		} `json:"Error"`
	}
	var e errBody
	e.Error.Description = msg
	b, _ := json.Marshal(e)
	return b
}
