package router

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"

	apiProto "github.com/dtroode/identity-server/api/identity/v1"
	grpcctx "github.com/dtroode/identity-server/internal/api/grpc/context"
	"github.com/dtroode/identity-server/internal/credential"
	"github.com/dtroode/identity-server/internal/repository/memory"
	"github.com/dtroode/identity-server/internal/service"
	"github.com/dtroode/identity-server/internal/testutil"
	"github.com/dtroode/identity-server/internal/token"
)

const (
	password   = "Sup3r$ecret"
	adminEmail = "root@example.com"
)

type testClients struct {
	auth    apiProto.AuthClient
	account apiProto.AccountClient
	health  healthpb.HealthClient
}

func newTestServer(t *testing.T) testClients {
	t.Helper()

	lg := testutil.MakeNoopLogger()
	accounts := memory.NewAccountRepository()
	tokens := memory.NewRefreshTokenRepository()

	jwtManager, err := token.NewJWT(token.Config{
		Secret:    "0123456789abcdef0123456789abcdef",
		Issuer:    "identity-test",
		Audience:  "identity-test-clients",
		AccessTTL: 15 * time.Minute,
		ClockSkew: 5 * time.Second,
	})
	require.NoError(t, err)

	credCfg := credential.DefaultConfig()
	credCfg.Params = credential.Params{MemoryKiB: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
	creds := credential.NewStore(credCfg, accounts, credential.NewMemoryLockout(credCfg.Lockout, nil), lg)

	cfg := service.DefaultConfig()
	cfg.AdminEmails = []string{adminEmail}
	tokenService := service.NewTokenService(cfg, jwtManager, tokens, accounts, lg)
	authService := service.NewAuth(cfg, accounts, creds, tokenService, lg)
	accountService := service.NewAccount(accounts, creds, tokenService, lg)

	r := New(authService, tokenService, accountService, grpcctx.NewManager(), lg)
	s := r.Register()

	lis := bufconn.Listen(1 << 20)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return testClients{
		auth:    apiProto.NewAuthClient(conn),
		account: apiProto.NewAccountClient(conn),
		health:  healthpb.NewHealthClient(conn),
	}
}

func bearer(ctx context.Context, accessToken string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+accessToken)
}

func reason(t *testing.T, err error) string {
	t.Helper()
	st, ok := status.FromError(err)
	require.True(t, ok)
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info.GetReason()
		}
	}
	return ""
}

func TestRouter_SessionLifecycle(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()

	reg, err := c.auth.Register(ctx, &apiProto.RegisterRequest{
		Email:           "alice@example.com",
		Password:        password,
		ConfirmPassword: password,
		FirstName:       "Alice",
		LastName:        "Liddell",
		DeviceInfo:      "router-test",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Customer"}, reg.GetUser().GetRoles())
	assert.True(t, reg.GetAccessTokenExpiresAt().AsTime().After(time.Now()))

	_, err = c.auth.Register(ctx, &apiProto.RegisterRequest{
		Email:           "ALICE@example.com",
		Password:        password,
		ConfirmPassword: password,
		FirstName:       "Alice",
		LastName:        "Liddell",
	})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	_, err = c.auth.Login(ctx, &apiProto.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, "INVALID_CREDENTIALS", reason(t, err))

	login, err := c.auth.Login(ctx, &apiProto.LoginRequest{Email: "alice@example.com", Password: password})
	require.NoError(t, err)

	me, err := c.account.GetMe(bearer(ctx, login.AccessToken), &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, reg.GetUser().GetId(), me.GetUser().GetId())
	assert.Equal(t, "Alice Liddell", me.GetUser().GetFullName())
	assert.True(t, me.GetActive())

	sessions, err := c.account.ListSessions(bearer(ctx, login.AccessToken), &emptypb.Empty{})
	require.NoError(t, err)
	require.Len(t, sessions.GetSessions(), 2)
	assert.Equal(t, "bufconn", sessions.GetSessions()[0].GetIpAddress())
	assert.Equal(t, "router-test", sessions.GetSessions()[0].GetDeviceInfo())

	refreshed, err := c.auth.Refresh(ctx, &apiProto.RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	sessions, err = c.account.ListSessions(bearer(ctx, refreshed.AccessToken), &emptypb.Empty{})
	require.NoError(t, err)
	require.Len(t, sessions.GetSessions(), 3, "rotated sessions stay listed")
	rotated := sessions.GetSessions()[1]
	assert.False(t, rotated.GetActive())
	assert.Equal(t, "rotated", rotated.GetRevokedReason())
	assert.NotNil(t, rotated.GetRevokedAt())
	assert.True(t, sessions.GetSessions()[2].GetActive())

	_, err = c.auth.Refresh(ctx, &apiProto.RefreshRequest{RefreshToken: login.RefreshToken})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, "TOKEN_REUSE_DETECTED", reason(t, err))

	_, err = c.auth.Refresh(ctx, &apiProto.RefreshRequest{RefreshToken: refreshed.RefreshToken})
	assert.Equal(t, "TOKEN_REUSE_DETECTED", reason(t, err), "the whole family is revoked")

	_, err = c.auth.Refresh(ctx, &apiProto.RefreshRequest{RefreshToken: reg.RefreshToken})
	assert.Equal(t, "TOKEN_REUSE_DETECTED", reason(t, err))

	_, err = c.auth.Logout(bearer(ctx, refreshed.AccessToken), &apiProto.LogoutRequest{RefreshToken: refreshed.RefreshToken})
	assert.NoError(t, err, "logout of a revoked token succeeds")
}

func TestRouter_RefreshKeepsSessionDevice(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()

	reg, err := c.auth.Register(ctx, &apiProto.RegisterRequest{
		Email:           "alice@example.com",
		Password:        password,
		ConfirmPassword: password,
		FirstName:       "Alice",
		LastName:        "Liddell",
		DeviceInfo:      "iPhone 15",
	})
	require.NoError(t, err)

	refreshed, err := c.auth.Refresh(ctx, &apiProto.RefreshRequest{RefreshToken: reg.RefreshToken})
	require.NoError(t, err)

	sessions, err := c.account.ListSessions(bearer(ctx, refreshed.AccessToken), &emptypb.Empty{})
	require.NoError(t, err)
	require.Len(t, sessions.GetSessions(), 2)
	for _, s := range sessions.GetSessions() {
		assert.Equal(t, "iPhone 15", s.GetDeviceInfo())
	}
}

func TestRouter_LoginFallsBackToUserAgent(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()

	_, err := c.auth.Register(ctx, &apiProto.RegisterRequest{
		Email:           "alice@example.com",
		Password:        password,
		ConfirmPassword: password,
		FirstName:       "Alice",
		LastName:        "Liddell",
	})
	require.NoError(t, err)

	sessions, err := c.account.ListSessions(bearer(ctx, mustLogin(t, c, "alice@example.com")), &emptypb.Empty{})
	require.NoError(t, err)
	require.NotEmpty(t, sessions.GetSessions())
	assert.Contains(t, sessions.GetSessions()[0].GetDeviceInfo(), "grpc-go")
}

func TestRouter_AdminOperations(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()

	admin, err := c.auth.Register(ctx, &apiProto.RegisterRequest{
		Email:           adminEmail,
		Password:        password,
		ConfirmPassword: password,
		FirstName:       "Root",
		LastName:        "Admin",
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Customer", "Admin"}, admin.GetUser().GetRoles())

	alice, err := c.auth.Register(ctx, &apiProto.RegisterRequest{
		Email:           "alice@example.com",
		Password:        password,
		ConfirmPassword: password,
		FirstName:       "Alice",
		LastName:        "Liddell",
	})
	require.NoError(t, err)

	_, err = c.account.GetUser(bearer(ctx, alice.AccessToken), &apiProto.GetUserRequest{UserId: admin.GetUser().GetId()})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = c.account.DeactivateUser(bearer(ctx, alice.AccessToken), &apiProto.DeactivateUserRequest{UserId: admin.GetUser().GetId()})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = c.account.DeactivateUser(ctx, &apiProto.DeactivateUserRequest{UserId: alice.GetUser().GetId()})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = c.account.GetUser(bearer(ctx, admin.AccessToken), &apiProto.GetUserRequest{UserId: "not-a-uuid"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	profile, err := c.account.GetUser(bearer(ctx, admin.AccessToken), &apiProto.GetUserRequest{UserId: alice.GetUser().GetId()})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", profile.GetUser().GetEmail())
	assert.True(t, profile.GetActive())

	_, err = c.account.DeactivateUser(bearer(ctx, admin.AccessToken), &apiProto.DeactivateUserRequest{UserId: alice.GetUser().GetId()})
	require.NoError(t, err)

	_, err = c.auth.Refresh(ctx, &apiProto.RefreshRequest{RefreshToken: alice.RefreshToken})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	profile, err = c.account.GetUser(bearer(ctx, admin.AccessToken), &apiProto.GetUserRequest{UserId: alice.GetUser().GetId()})
	require.NoError(t, err)
	assert.False(t, profile.GetActive())

	_, err = c.account.GetUser(bearer(ctx, admin.AccessToken), &apiProto.GetUserRequest{UserId: "00000000-0000-0000-0000-000000000001"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func mustLogin(t *testing.T, c testClients, email string) string {
	t.Helper()
	resp, err := c.auth.Login(context.Background(), &apiProto.LoginRequest{Email: email, Password: password})
	require.NoError(t, err)
	return resp.GetAccessToken()
}

func TestRouter_ValidationDetails(t *testing.T) {
	c := newTestServer(t)

	_, err := c.auth.Register(context.Background(), &apiProto.RegisterRequest{
		Email:           "alice@example.com",
		Password:        "password",
		ConfirmPassword: "password",
		FirstName:       "Alice",
		LastName:        "Liddell",
	})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Equal(t, "VALIDATION_FAILED", reason(t, err))

	st, _ := status.FromError(err)
	var violations []string
	for _, d := range st.Details() {
		if br, ok := d.(*errdetails.BadRequest); ok {
			for _, v := range br.GetFieldViolations() {
				violations = append(violations, v.GetDescription())
			}
		}
	}
	assert.Contains(t, violations, "password must contain a digit")
}

func TestRouter_ProtectedMethodsNeedBearer(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()

	_, err := c.account.GetMe(ctx, &emptypb.Empty{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = c.auth.Logout(ctx, &apiProto.LogoutRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = c.account.GetMe(bearer(ctx, "not-a-jwt"), &emptypb.Empty{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestRouter_ChangePasswordEndsSessions(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()

	reg, err := c.auth.Register(ctx, &apiProto.RegisterRequest{
		Email:           "alice@example.com",
		Password:        password,
		ConfirmPassword: password,
		FirstName:       "Alice",
		LastName:        "Liddell",
	})
	require.NoError(t, err)

	_, err = c.account.ChangePassword(bearer(ctx, reg.AccessToken), &apiProto.ChangePasswordRequest{
		CurrentPassword:    password,
		NewPassword:        "N3w&Improved",
		ConfirmNewPassword: "N3w&Improved",
	})
	require.NoError(t, err)

	_, err = c.auth.Refresh(ctx, &apiProto.RefreshRequest{RefreshToken: reg.RefreshToken})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = c.account.Deactivate(bearer(ctx, reg.AccessToken), &emptypb.Empty{})
	require.NoError(t, err)

	_, err = c.auth.Login(ctx, &apiProto.LoginRequest{Email: "alice@example.com", Password: "N3w&Improved"})
	assert.Equal(t, "ACCOUNT_DEACTIVATED", reason(t, err))
}

func TestRouter_HealthIsPublic(t *testing.T) {
	c := newTestServer(t)

	resp, err := c.health.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	resp, err = c.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "identity.v1.Auth"})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestRequiresAuth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method string
		want   bool
	}{
		{apiProto.Auth_Register_FullMethodName, false},
		{apiProto.Auth_Login_FullMethodName, false},
		{apiProto.Auth_Refresh_FullMethodName, false},
		{"/grpc.health.v1.Health/Check", false},
		{apiProto.Auth_Revoke_FullMethodName, true},
		{apiProto.Auth_Logout_FullMethodName, true},
		{apiProto.Account_GetMe_FullMethodName, true},
		{apiProto.Account_DeactivateUser_FullMethodName, true},
		{"/unknown.Service/Method", true},
	}

	for _, tt := range tests {
		meta := interceptors.NewServerCallMeta(tt.method, nil, nil)
		assert.Equal(t, tt.want, requiresAuth(context.Background(), meta), tt.method)
	}
}

func TestRouter_Shutdown(t *testing.T) {
	t.Parallel()

	r := New(nil, nil, nil, grpcctx.NewManager(), testutil.MakeNoopLogger())
	s := r.Register()
	require.NotNil(t, s)
	r.Shutdown()
}
