// Package gtfsrt decodes GTFS-Realtime trip update feeds into train updates.
//
// Decode is a pure function over the protobuf payload. Service ties it to
// the feed router, the HTTP fetcher and the station catalog:
//
//	svc := gtfsrt.NewService(router, client, catalog, logger)
//	trains := svc.TrainsOrEmpty(ctx, "ACE")
//
// Every stop time update becomes one TrainUpdate, in feed order. Arrival and
// departure are independently optional and are passed through as the feed's
// epoch seconds.
package gtfsrt
