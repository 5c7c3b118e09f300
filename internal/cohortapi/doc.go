// Package cohortapi provides an HTTP client and wire types for the patient-list API.
//
// # Overview
//
// The browser never talks to storage directly. Every list it shows comes from
// the endpoints below, served either by a remote EMR backend or by the bundled
// `cohort serve` backend (see internal/server).
//
// # API Endpoints
//
//   - GET    /api/lists             page of summaries; params starred, kind, name, page, pageSize
//   - POST   /api/lists             create a list from a NewList body (201 + ListSummary)
//   - POST   /api/lists/{id}/star   star a list (204)
//   - DELETE /api/lists/{id}/star   unstar a list (204)
//
// Non-2xx responses carry an ErrorResponse body and surface as *StatusError.
//
// # Client Usage
//
//	client, err := cohortapi.NewClient("127.0.0.1:7488", cohortapi.WithTimeout(5*time.Second))
//	if err != nil {
//		return err
//	}
//	page, err := client.FetchLists(ctx, cohortapi.ListQuery{
//		Filter:   cohortapi.ListFilter{Kind: cohortapi.KindSystem, NameContains: "diabetes"},
//		Page:     1,
//		PageSize: 20,
//	})
//
// The client holds no state between calls; it is safe for concurrent use.
package cohortapi
