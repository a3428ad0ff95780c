// Package htmlform scrapes ASP.NET WebForms search pages: GET the
// landing page, extract the hidden __VIEWSTATE / __VIEWSTATEGENERATOR
// / __EVENTVALIDATION fields, then replay them as a form POST carrying
// the query parameters, with cookies threaded across both requests.
package htmlform
