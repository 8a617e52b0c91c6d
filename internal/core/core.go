/*
Core drives the sequential market data path.

# Module
  - aggregate book: one venue book per configured venue, mutated in place
  - imbalance trackers: one per venue, fed from refreshed best levels
  - broker: fans encoded frames out to subscribers without blocking

# Source
 1. normalized updates from the ingest feed
 2. synthetic updates from the mdg generator

# Produce
  - encoded update frames to the distribution broker
  - ticks to registered observers (strategy, signal store)

# Sharded
  - single writer per engine; one engine per instrument
*/
package core
