// Package component holds the value types shared by the collector and the
// publisher: host component entries, exported records, snapshots and the
// exclusion set.
package component
