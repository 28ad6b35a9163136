// Package fetch implements the two blob-fetcher backends a table reader can
// be pointed at: a local filesystem directory, or an HTTP(S) base URL. Both
// satisfy table.Fetcher structurally (FetchMeta/FetchBlob) without this
// package depending on the table package, keeping the dependency direction
// one-way: table doesn't know fetch exists, fetch doesn't know about
// schemas or blob maps, it only moves bytes.
package fetch
