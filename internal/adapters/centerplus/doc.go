// Package centerplus implements the client for the CenterPlus tenant API.
//
// The package covers:
//   - public course, subject and branch listings
//   - lead creation (the landing page's consultation form)
//   - response-envelope normalization across API schema generations
//   - typed error mapping (auth, connectivity, API errors)
//
// # Authentication
//
// Requests carry "Authorization: Bearer <token>" when a token is available,
// taken from the local token store first and the deployment-configured
// static token second. The API signals an expired token only through
// 401/403; the client maps both to ErrUnauthorized and never retries.
//
// # Quick start
//
// Create the client:
//
//	client := centerplus.New(&cfg.API, tokenStore, log)
//
// Fetch the public course list:
//
//	courses, err := client.FetchCourses(ctx)
//
// Create a lead:
//
//	receipt, err := client.CreateLead(ctx, payload)
//
// # Error handling
//
// Typed checks for common conditions:
//
//	if centerplus.IsUnauthorized(err) {
//	    // prompt for a new token, do not retry automatically
//	}
//	if centerplus.IsConnectivity(err) {
//	    // the error message names the URL that failed
//	}
package centerplus
