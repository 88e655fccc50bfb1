/*
Package dataset loads and indexes the per-route transit dataset dump.

The dump is a single JSON object keyed by route id, where each route
carries the raw API captures it was assembled from:

	{
	  "3": {
	    "getroutebyid":      {route metadata},
	    "getvarsbyroute":    [variants],
	    "getstopsbyvar":     {"<varId>": [stops]},
	    "getpathsbyvar":     {"<varId>": {lat: [...], lng: [...]}},
	    "gettimetablebyroute": [timetables],
	    "gettripsbytimetable": {"<timeTableId>": [trips]}
	  }
	}

Load from a file path or an HTTP(S) URL:

	idx, err := dataset.Load("data/routes.json")

or build straight from bytes you fetched yourself:

	idx, err := dataset.NewIndexFromBytes(raw)

The index keeps route keys sorted (numerically where the keys are numeric)
so every walk over the dataset is deterministic. Field-level dirt in trip
times is preserved as-is (see ClockText); only structurally broken JSON is
a load error.

Parse once and keep the index in memory; it is safe for concurrent reads.
A gob snapshot round-trip is available for disk caching, see SerializeIndex
and DeserializeIndex.
*/
package dataset
