// Package ingest implements the chunked, conflict-aware loading pipeline.
//
// The pipeline splits typed row sequences into bounded chunks and flushes
// each chunk as one transaction with an explicit conflict policy:
//
//   - regions and property listings: insert-ignore (ON CONFLICT DO
//     NOTHING), so re-running on already-loaded data changes nothing
//   - metro observations: overwrite (ON CONFLICT DO UPDATE), so stale
//     measures are refreshed without duplicating fact rows
//
// Chunks commit independently. A failure leaves earlier chunks committed
// and surfaces as a PartialLoadError carrying the committed row count;
// the pipeline never reports a partial run as success. Observations can
// alternatively be loaded through the COPY protocol when the target table
// carries no uniqueness constraint.
package ingest
