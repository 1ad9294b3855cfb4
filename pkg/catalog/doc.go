// Package catalog provides the parts data behind a lookup: candidate parts for
// a vehicle, supersession chains, cross references and accessory upsell.
//
// Catalog is the read interface. Four implementations are available:
//
//   - Memory holds a Seed in process. NewDemo returns one with sample data.
//   - Postgres reads the tables created by Migrations through database/sql.
//   - OpenSearch reads four indices named after a configurable prefix.
//   - Cached wraps any of the above with LRU caches.
//
// Seeds are loaded from YAML with LoadSeed or LoadSeedFile and can be written
// into Postgres or OpenSearch with their Import methods.
//
// A Vehicle given only by VIN is resolved against the known vehicles; the VIN
// may contain '*' wildcards. Parts that fit carry the vehicle label, for
// example "2018 Jeep Wrangler", in Fits.
//
// Part numbers are compared case-insensitively and with surrounding
// whitespace ignored.
package catalog
