// Package acclient provides the primary entry point for constructing an
// ActiveCampaign API client that implements the activecampaign.Client
// interface.
//
// Quick start
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
//
//	  // Minimal: account URL and token.
//	  cli, err := acclient.NewWithToken(ctx, "youraccount.api-us1.com", "token")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with retries, event tracking and logging:
//	  cli, err = acclient.New(ctx, &activecampaign.Config{
//	    APIURL:             "https://youraccount.api-us1.com",
//	    APIToken:           "token",
//	    EventTrackingActID: "123456",
//	    EventTrackingKey:   "key",
//	    Retry:              activecampaign.DefaultRetryPolicy(),
//	    Logger:             activecampaign.NewHCLogger(nil),
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  accounts, err := cli.Accounts().ListAll(ctx, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = accounts
//	}
package acclient
