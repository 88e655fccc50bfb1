package formatter

import (
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/transit-types/siri"
)

// BuildXML serializes a SIRI response to XML
func BuildXML(res *SiriResponse) []byte {
	var b strings.Builder
	b.WriteString("<Siri xmlns=\"http://www.siri.org.uk/siri\">")
	b.WriteString("<ServiceDelivery>")
	if res.ResponseTimestamp != "" {
		b.WriteString("<ResponseTimestamp>")
		b.WriteString(xmlEscape(res.ResponseTimestamp))
		b.WriteString("</ResponseTimestamp>")
	}
	if res.ProducerRef != "" {
		b.WriteString("<ProducerRef>")
		b.WriteString(xmlEscape(res.ProducerRef))
		b.WriteString("</ProducerRef>")
	}
	for _, et := range res.EstimatedTimetableDelivery {
		writeEstimatedTimetableXML(&b, et)
	}
	b.WriteString("</ServiceDelivery>")
	b.WriteString("</Siri>")
	return []byte(b.String())
}

func writeEstimatedTimetableXML(b *strings.Builder, et siri.EstimatedTimetableDelivery) {
	if et.Version != "" {
		b.WriteString("<EstimatedTimetableDelivery version=\"")
		b.WriteString(xmlEscape(et.Version))
		b.WriteString("\">")
	} else {
		b.WriteString("<EstimatedTimetableDelivery>")
	}
	if et.ResponseTimestamp != "" {
		b.WriteString("<ResponseTimestamp>")
		b.WriteString(xmlEscape(et.ResponseTimestamp))
		b.WriteString("</ResponseTimestamp>")
	}
	for _, frame := range et.EstimatedJourneyVersionFrame {
		b.WriteString("<EstimatedJourneyVersionFrame>")
		if frame.RecordedAtTime != "" {
			b.WriteString("<RecordedAtTime>")
			b.WriteString(xmlEscape(frame.RecordedAtTime))
			b.WriteString("</RecordedAtTime>")
		}
		for _, journey := range frame.EstimatedVehicleJourney {
			writeEstimatedJourneyXML(b, journey)
		}
		b.WriteString("</EstimatedJourneyVersionFrame>")
	}
	b.WriteString("</EstimatedTimetableDelivery>")
}

func writeEstimatedJourneyXML(b *strings.Builder, journey siri.EstimatedVehicleJourney) {
	b.WriteString("<EstimatedVehicleJourney>")
	if journey.RecordedAtTime != "" {
		b.WriteString("<RecordedAtTime>")
		b.WriteString(xmlEscape(journey.RecordedAtTime))
		b.WriteString("</RecordedAtTime>")
	}
	if journey.LineRef != "" {
		b.WriteString("<LineRef>")
		b.WriteString(xmlEscape(journey.LineRef))
		b.WriteString("</LineRef>")
	}
	if journey.DirectionRef != "" {
		b.WriteString("<DirectionRef>")
		b.WriteString(xmlEscape(journey.DirectionRef))
		b.WriteString("</DirectionRef>")
	}
	if journey.FramedVehicleJourneyRef.DatedVehicleJourneyRef != "" {
		b.WriteString("<FramedVehicleJourneyRef>")
		if journey.FramedVehicleJourneyRef.DataFrameRef != "" {
			b.WriteString("<DataFrameRef>")
			b.WriteString(xmlEscape(journey.FramedVehicleJourneyRef.DataFrameRef))
			b.WriteString("</DataFrameRef>")
		}
		b.WriteString("<DatedVehicleJourneyRef>")
		b.WriteString(xmlEscape(journey.FramedVehicleJourneyRef.DatedVehicleJourneyRef))
		b.WriteString("</DatedVehicleJourneyRef>")
		b.WriteString("</FramedVehicleJourneyRef>")
	}
	if journey.VehicleMode != "" {
		b.WriteString("<VehicleMode>")
		b.WriteString(xmlEscape(journey.VehicleMode))
		b.WriteString("</VehicleMode>")
	}
	if journey.OriginName != "" {
		b.WriteString("<OriginName>")
		b.WriteString(xmlEscape(journey.OriginName))
		b.WriteString("</OriginName>")
	}
	if journey.DestinationName != "" {
		b.WriteString("<DestinationName>")
		b.WriteString(xmlEscape(journey.DestinationName))
		b.WriteString("</DestinationName>")
	}
	if journey.OperatorRef != "" {
		b.WriteString("<OperatorRef>")
		b.WriteString(xmlEscape(journey.OperatorRef))
		b.WriteString("</OperatorRef>")
	}
	b.WriteString("<Monitored>")
	if journey.Monitored {
		b.WriteString("true")
	} else {
		b.WriteString("false")
	}
	b.WriteString("</Monitored>")
	if journey.DataSource != "" {
		b.WriteString("<DataSource>")
		b.WriteString(xmlEscape(journey.DataSource))
		b.WriteString("</DataSource>")
	}
	if len(journey.EstimatedCalls) > 0 {
		b.WriteString("<EstimatedCalls>")
		for _, call := range journey.EstimatedCalls {
			writeEstimatedCallXML(b, call)
		}
		b.WriteString("</EstimatedCalls>")
	}
	b.WriteString("<IsCompleteStopSequence>")
	if journey.IsCompleteStopSequence {
		b.WriteString("true")
	} else {
		b.WriteString("false")
	}
	b.WriteString("</IsCompleteStopSequence>")
	b.WriteString("</EstimatedVehicleJourney>")
}

func writeEstimatedCallXML(b *strings.Builder, call siri.EstimatedCall) {
	b.WriteString("<EstimatedCall>")
	if call.StopPointRef != "" {
		b.WriteString("<StopPointRef>")
		b.WriteString(xmlEscape(call.StopPointRef))
		b.WriteString("</StopPointRef>")
	}
	if call.Order > 0 {
		b.WriteString("<Order>")
		b.WriteString(strconv.Itoa(call.Order))
		b.WriteString("</Order>")
	}
	if call.StopPointName != "" {
		b.WriteString("<StopPointName>")
		b.WriteString(xmlEscape(call.StopPointName))
		b.WriteString("</StopPointName>")
	}
	if call.AimedArrivalTime != "" {
		b.WriteString("<AimedArrivalTime>")
		b.WriteString(xmlEscape(call.AimedArrivalTime))
		b.WriteString("</AimedArrivalTime>")
	}
	if call.ExpectedArrivalTime != "" {
		b.WriteString("<ExpectedArrivalTime>")
		b.WriteString(xmlEscape(call.ExpectedArrivalTime))
		b.WriteString("</ExpectedArrivalTime>")
	}
	if call.ArrivalStatus != "" {
		b.WriteString("<ArrivalStatus>")
		b.WriteString(xmlEscape(call.ArrivalStatus))
		b.WriteString("</ArrivalStatus>")
	}
	if call.AimedDepartureTime != "" {
		b.WriteString("<AimedDepartureTime>")
		b.WriteString(xmlEscape(call.AimedDepartureTime))
		b.WriteString("</AimedDepartureTime>")
	}
	if call.ExpectedDepartureTime != "" {
		b.WriteString("<ExpectedDepartureTime>")
		b.WriteString(xmlEscape(call.ExpectedDepartureTime))
		b.WriteString("</ExpectedDepartureTime>")
	}
	if call.DepartureStatus != "" {
		b.WriteString("<DepartureStatus>")
		b.WriteString(xmlEscape(call.DepartureStatus))
		b.WriteString("</DepartureStatus>")
	}
	b.WriteString("</EstimatedCall>")
}

func xmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(s)
}
