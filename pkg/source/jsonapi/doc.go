// Package jsonapi is the shared client for authenticated JSON API
// sources: email+password login exchanged for a bearer JWT, automatic
// one-shot re-authentication on 401, and offset/limit pagination that
// stops on a short page.
package jsonapi
