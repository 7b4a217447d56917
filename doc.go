// Package pager provides offset- and cursor-based pagination primitives for GORM.
//
// Overview
//
// pager implements two pagination strategies over a composable GORM query:
//   - Paginate: offset pagination ("page N of M") with a parallel total count,
//     sortable-column whitelisting, optional free-text search and a
//     precomputed page-number window for UI rendering.
//   - PaginateWithCursor: keyset pagination over a single cursor column with
//     lookahead, producing opaque base64 cursor tokens.
//
// Key concepts
//   - SortableColumn: the whitelist of columns a caller may sort by. Unknown
//     keys fall back to the first whitelist entry.
//   - Options: page, limit, sort and search parameters as received from a
//     client; raw values are normalized before use.
//   - EnhanceFunc: an optional per-row post-processing step applied after
//     windowing, concurrently across rows, preserving row count and order.
//
// See README for examples and usage details.
package pager
