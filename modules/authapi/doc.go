// Package authapi is the reference auth backend: the endpoints the session
// core and API client consume, mounted as a chi router.
//
//	POST /auth/login            email+password sign-in
//	POST /auth/refresh          rotate the refresh credential, mint a new access credential
//	POST /auth/logout           revoke the refresh credential, clear cookies
//	GET  /users/me              bearer-protected profile fetch
//	GET  /auth/google           redirect to Google consent (optional)
//	GET  /auth/google/callback  OAuth code exchange (optional)
//
// Successful sign-in and renewal write the access, refresh and profile
// cookies on the response, so a server-rendered page and the browser runtime
// observe the same session.
package authapi
