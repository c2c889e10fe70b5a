/*
Package hubsdk provides a client SDK for the TunnelHub dashboard API.

# Overview

The package is organised around two types:

  - Client: unauthenticated operations (public key, health, restart) and login
  - Session: operations that need a session token (tunnels, users, key rotation)

Logging in fetches the server's RSA public key, encrypts the password with
PKCS#1 v1.5 and exchanges it for a session token:

	client := hubsdk.NewClient("http://localhost:8000")

	session, err := client.Login(ctx, "admin123")
	if err != nil {
		return err
	}
	defer session.Logout(ctx)

	tunnels, err := session.ListTunnels(ctx, "")

# Errors

Non-2xx responses are returned as *APIError carrying the status code and the
server's "detail" message. A rejected password is reported as
ErrInvalidCredentials. Rate-limited requests carry the server's Retry-After
value:

	var apiErr *hubsdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		time.Sleep(apiErr.RetryAfter)
	}
*/
package hubsdk
