// Package bulkcsv streams pipe-delimited CSV with quoted-field and
// doubled-quote-escape handling, for the multi-GB RRC-style dumps that
// must never be loaded fully into memory. It wraps encoding/csv rather
// than reimplementing quoting, since the stdlib reader already handles
// RFC 4180 quoting correctly — only the delimiter, lazy quoting and
// tolerance of ragged rows differ from its defaults.
package bulkcsv
