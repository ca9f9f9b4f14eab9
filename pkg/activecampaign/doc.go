// Package activecampaign provides types, interfaces, and helpers for working
// with the ActiveCampaign REST API v3.
//
// # Overview
//
// The package defines the domain types (Contact, Account, Deal, List, Tag,
// ...) and the interfaces of the resource clients (ContactsClient,
// AccountsClient, ...). The acclient package builds a concrete Client from a
// Config; most consumers import both.
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/activecampaign/pkg/acclient"
//	  "github.com/fivetwenty-io/activecampaign/pkg/activecampaign"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := acclient.New(ctx, &activecampaign.Config{
//	    APIURL:   "youraccount.api-us1.com",
//	    APIToken: "token",
//	    Retry:    activecampaign.DefaultRetryPolicy(),
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  contact, err := cli.Contacts().Create(ctx, &activecampaign.ContactRequest{Email: "jane@example.com"})
//	  if err != nil { log.Fatal(err) }
//	  _ = contact
//	}
//
// # Retries
//
// Requests are sent once unless Config.Retry is set. LinearBackoffPolicy
// retries transport faults, 5xx responses and (by default) 403 responses,
// waiting k × BaseDelay before retry k. Only the last attempt's outcome is
// returned.
//
// # Pagination
//
// List methods return one Page. ListAll-style methods walk every page with
// Aggregate; the page count is computed once from the first page's
// meta.total and is not re-checked if records are added or removed while
// iterating.
//
// # Errors
//
// A response with a non-2xx status becomes an *HTTPError carrying the status,
// raw body and parsed API errors. A request that never got a response
// becomes a *TransportError. IsNotFound, IsForbidden and friends branch on
// common cases.
package activecampaign
