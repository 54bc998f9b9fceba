// Package credential implements the credential store consumed by the session
// engine: password policy, Argon2id hashing and the failed-attempt lockout.
//
// The lockout counter is kept outside the account row so that it can live in
// Redis and be shared by every instance of the service.
package credential
