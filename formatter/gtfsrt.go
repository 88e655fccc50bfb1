package formatter

import (
	"strconv"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/bus-to-events/events"
)

// TripUpdatesFeed renders a node table as a GTFS-RT TripUpdates feed.
// Event offsets are anchored to the service date's midnight, so times
// past 24h spill into the next calendar day.
func TripUpdatesFeed(table *events.Table, serviceDate, generatedAt time.Time) *gtfsrtpb.FeedMessage {
	midnight := time.Date(serviceDate.Year(), serviceDate.Month(), serviceDate.Day(), 0, 0, 0, 0, serviceDate.Location())

	groups := groupByTrip(table.Nodes)
	fm := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Incrementality:      gtfsrtpb.FeedHeader_FULL_DATASET.Enum(),
			Timestamp:           proto.Uint64(uint64(generatedAt.Unix())),
		},
		Entity: make([]*gtfsrtpb.FeedEntity, 0, len(groups)),
	}
	for _, grp := range groups {
		fm.Entity = append(fm.Entity, tripUpdateEntity(grp, midnight))
	}
	return fm
}

// TripUpdatesPB is TripUpdatesFeed marshalled to the protobuf wire form.
func TripUpdatesPB(table *events.Table, serviceDate, generatedAt time.Time) ([]byte, error) {
	return proto.Marshal(TripUpdatesFeed(table, serviceDate, generatedAt))
}

func tripUpdateEntity(nodes []events.Node, midnight time.Time) *gtfsrtpb.FeedEntity {
	first := nodes[0]
	tripID := strconv.Itoa(first.TripID)

	tu := &gtfsrtpb.TripUpdate{
		Trip: &gtfsrtpb.TripDescriptor{
			TripId:               proto.String(tripID),
			RouteId:              proto.String(strconv.Itoa(first.RouteID)),
			StartTime:            proto.String(first.Time),
			StartDate:            proto.String(midnight.Format("20060102")),
			ScheduleRelationship: gtfsrtpb.TripDescriptor_SCHEDULED.Enum(),
		},
	}

	visits := stopVisits(nodes)
	tu.StopTimeUpdate = make([]*gtfsrtpb.TripUpdate_StopTimeUpdate, 0, len(visits))
	for i, v := range visits {
		stu := &gtfsrtpb.TripUpdate_StopTimeUpdate{
			StopSequence: proto.Uint32(uint32(i + 1)),
			StopId:       proto.String(strconv.Itoa(v.stopID)),
		}
		if v.arrival >= 0 {
			stu.Arrival = &gtfsrtpb.TripUpdate_StopTimeEvent{
				Time: proto.Int64(midnight.Unix() + int64(v.arrival)),
			}
		}
		if v.departure >= 0 {
			stu.Departure = &gtfsrtpb.TripUpdate_StopTimeEvent{
				Time: proto.Int64(midnight.Unix() + int64(v.departure)),
			}
		}
		tu.StopTimeUpdate = append(tu.StopTimeUpdate, stu)
	}

	// Entity ids need only be unique within the feed; variant-qualified
	// trip ids keep them unique even when operators reuse trip numbers.
	return &gtfsrtpb.FeedEntity{
		Id:         proto.String(strconv.Itoa(first.RouteVarID) + ":" + tripID),
		TripUpdate: tu,
	}
}
