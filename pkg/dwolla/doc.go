/*
Package dwolla is a client for the Dwolla v2 HAL+JSON API.

# Overview

A Client holds application credentials, obtains access tokens with the OAuth2
client credentials grant and refreshes them transparently. Requests are
described by a path, optional query parameters and optional headers:

	client, err := dwolla.NewClient(dwolla.ClientOptions{
		Key:         key,
		Secret:      secret,
		Environment: dwolla.Sandbox,
	})

	res, err := client.Get(ctx, "customers", dwolla.Query{"limit": 10}, nil)

# Paths

A path can be a string relative to the API root ("customers", "/customers"),
a full URL, a model carrying HAL links, or a raw decoded HAL body. Models and
bodies are addressed through their "self" link. Full URLs on another host are
rebased onto the configured API URL.

# Typed responses

The untyped verbs return the decoded JSON. GetMapped, PostMapped,
PostFollowMapped and DeleteMapped project the body into a model type using
the model's hal.Schema:

	res, err := dwolla.GetMapped[models.Customer](ctx, client, "customers/"+id, nil, nil)
	fmt.Println(res.Body.FirstName)

# Tokens

Tokens are cached by a TokenManager and renewed once they are within
ExpiresInMargin of expiry. Concurrent callers that find the token stale may
each request a new one.

# Errors

Every error raised by the package matches ErrDwolla. The token endpoint
rejecting the credentials yields an *AuthError; any response with status
400 or above yields a *ResponseError with the body as received:

	_, err := client.Get(ctx, "customers/nope", nil, nil)
	var respErr *dwolla.ResponseError
	if errors.As(err, &respErr) && respErr.Status == http.StatusNotFound {
		// ...
	}

Configuration errors from NewClient match ErrInvalidOptions. Transport
failures are wrapped and reachable with errors.Is and errors.As.
*/
package dwolla
