package supabase

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"tasknest/backend/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/supabase-community/supabase-go"
)

var serviceClient *supabase.Client

// Init creates the service-role client used by endpoints that act on
// behalf of a user without a bearer token (context processing).
func Init() {
	apiURL := os.Getenv("SUPABASE_URL")
	apiKey := os.Getenv("SUPABASE_KEY")

	if apiURL == "" || apiKey == "" {
		config.Logger.Fatal("SUPABASE_URL or SUPABASE_KEY is missing")
	}

	var err error
	serviceClient, err = supabase.NewClient(apiURL, apiKey, &supabase.ClientOptions{})
	if err != nil {
		config.Logger.Fatal("Failed to create Supabase client:", err)
	}
}

// Store wraps a Supabase client with the queries the application needs.
// Per-request stores carry the caller's JWT so row-level security applies.
type Store struct {
	client *supabase.Client
}

func NewStore(client *supabase.Client) *Store {
	return &Store{client: client}
}

// ServiceStore uses the service-role client initialized by Init.
func ServiceStore() *Store {
	return &Store{client: serviceClient}
}

// StoreFromRequest builds a Store scoped to the request's bearer token and
// returns the authenticated user id (the token's sub claim).
func StoreFromRequest(r *http.Request) (*Store, string, error) {
	apiURL := os.Getenv("SUPABASE_URL")
	apiKey := os.Getenv("SUPABASE_KEY")

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, "", fmt.Errorf("missing Authorization header")
	}

	jwtString := strings.TrimPrefix(authHeader, "Bearer ")
	if jwtString == "" || jwtString == authHeader {
		return nil, "", fmt.Errorf("invalid Authorization header")
	}

	// Signature verification happens at the PostgREST layer; here we only
	// need the subject for cache keys and query scoping.
	token, _, err := jwt.NewParser().ParseUnverified(jwtString, jwt.MapClaims{})
	if err != nil {
		return nil, "", fmt.Errorf("invalid JWT format")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, "", fmt.Errorf("invalid JWT claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, "", fmt.Errorf("missing sub in token")
	}

	client, err := supabase.NewClient(apiURL, apiKey, &supabase.ClientOptions{
		Headers: map[string]string{
			"Authorization": "Bearer " + jwtString,
		},
	})
	if err != nil {
		return nil, "", err
	}
	return &Store{client: client}, sub, nil
}
