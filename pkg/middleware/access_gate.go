package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"shop-mkononi/internal/data/entity"
	"shop-mkononi/internal/data/repository"
	"shop-mkononi/pkg/token"

	"go.uber.org/zap"
)

const (
	signinPath      = "/auth/signin"
	signupPath      = "/auth/signup"
	verifyPath      = "/auth/verify"
	phoneVerifyPath = "/auth/verify-phone"
	homePath        = "/"
)

// AccessGate gates page navigation by session presence, role and verification
// status. Decisions read the signed session claims only; the single exception
// is the per-shop buyer verification policy, which needs a shop lookup.
type AccessGate struct {
	tokens *token.Manager
	shops  repository.ShopRepository
	log    *zap.Logger
}

func NewAccessGate(tokens *token.Manager, shops repository.ShopRepository, log *zap.Logger) *AccessGate {
	return &AccessGate{
		tokens: tokens,
		shops:  shops,
		log:    log.With(zap.String("middleware", "access_gate")),
	}
}

// Handler evaluates the rules in order; the first match decides.
func (g *AccessGate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		claims := g.sessionClaims(r)

		// 1. Unauthenticated access to a protected page goes to sign-in,
		//    keeping the original destination.
		if claims == nil && !isPublicPath(path) {
			redirectToSignin(w, r, path)
			return
		}

		// 2. A signed-in user has no business on the auth pages
		if claims != nil && (path == signinPath || path == signupPath) {
			http.Redirect(w, r, homePath, http.StatusFound)
			return
		}

		// 3. The verification page is reachable in every state
		if path == verifyPath || path == phoneVerifyPath {
			next.ServeHTTP(w, r)
			return
		}

		// 4. Seller area
		if strings.HasPrefix(path, "/seller") {
			if claims == nil {
				redirectToSignin(w, r, path)
				return
			}
			if claims.Role != string(entity.RoleSeller) {
				if hasPendingSellerApplication(claims) {
					http.Redirect(w, r, verifyPath, http.StatusFound)
				} else {
					http.Redirect(w, r, homePath, http.StatusFound)
				}
				return
			}
			if claims.VerificationStatus != string(entity.VerificationVerified) {
				http.Redirect(w, r, verifyPath, http.StatusFound)
				return
			}
		}

		// 5. Admin area
		if strings.HasPrefix(path, "/admin") {
			if claims == nil || claims.Role != string(entity.RoleAdmin) {
				http.Redirect(w, r, homePath, http.StatusFound)
				return
			}
		}

		// 6. Per-shop buyer verification policy
		if slug := buyerProtectedShopSlug(r); slug != "" {
			if done := g.enforceShopPolicy(w, r, slug, claims); done {
				return
			}
		}

		// 7. Everything else passes
		next.ServeHTTP(w, r)
	})
}

// enforceShopPolicy applies the shop's buyer verification requirement.
// Returns true when a redirect was written.
func (g *AccessGate) enforceShopPolicy(w http.ResponseWriter, r *http.Request, slug string, claims *token.SessionClaims) bool {
	shop, err := g.shops.FindBySlug(r.Context(), slug)
	if err != nil {
		g.log.Error("Failed to load shop policy",
			zap.Error(err), zap.String("slug", slug))
		return false
	}
	if shop == nil || shop.BuyerVerification == entity.BuyerVerificationNone {
		return false
	}

	if claims == nil {
		redirectToSignin(w, r, r.URL.Path)
		return true
	}

	switch shop.BuyerVerification {
	case entity.BuyerVerificationID:
		if !claims.IsVerified {
			http.Redirect(w, r, verifyPath, http.StatusFound)
			return true
		}
	case entity.BuyerVerificationPhone:
		if claims.Phone == nil || *claims.Phone == "" {
			http.Redirect(w, r, phoneVerifyPath, http.StatusFound)
			return true
		}
	}

	return false
}

func (g *AccessGate) sessionClaims(r *http.Request) *token.SessionClaims {
	raw := g.tokens.FromRequest(r)
	if raw == "" {
		return nil
	}

	claims, err := g.tokens.Validate(raw)
	if err != nil {
		return nil
	}

	return claims
}

func redirectToSignin(w http.ResponseWriter, r *http.Request, callback string) {
	target := signinPath + "?callbackUrl=" + url.QueryEscape(callback)
	http.Redirect(w, r, target, http.StatusFound)
}

func hasPendingSellerApplication(claims *token.SessionClaims) bool {
	return claims.RequestedRole != nil &&
		*claims.RequestedRole == string(entity.RoleSeller) &&
		claims.VerificationStatus == string(entity.VerificationPending)
}

func isPublicPath(path string) bool {
	switch path {
	case homePath, signinPath, signupPath, verifyPath, phoneVerifyPath, "/health", "/categories":
		return true
	}

	return strings.HasPrefix(path, "/shops") || strings.HasPrefix(path, "/products")
}

// buyerProtectedShopSlug extracts the shop slug from shop pages and from the
// cart/checkout pages, which carry it as a query parameter.
func buyerProtectedShopSlug(r *http.Request) string {
	path := r.URL.Path

	if strings.HasPrefix(path, "/shops/") {
		rest := strings.TrimPrefix(path, "/shops/")
		if slug, _, _ := strings.Cut(rest, "/"); slug != "" {
			return slug
		}
		return ""
	}

	if path == "/cart" || path == "/checkout" {
		return r.URL.Query().Get("shop")
	}

	return ""
}
