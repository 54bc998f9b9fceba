// Package identityv1 holds the identity.v1 gRPC contract generated from the
// .proto files in this directory.
package identityv1

//go:generate protoc -I ../.. --go_out=../.. --go_opt=paths=source_relative --go-grpc_out=../.. --go-grpc_opt=paths=source_relative ../../identity/v1/auth.proto ../../identity/v1/account.proto
