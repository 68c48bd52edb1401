package auth

import (
	"errors"
	"net/http"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// CookieStore keeps the whole session client side in an HS256-signed JWT.
type CookieStore struct {
	secret []byte
	opts   CookieOptions
	now    func() time.Time
}

func NewCookieStore(secret string, opts CookieOptions) (*CookieStore, error) {
	if secret == "" {
		return nil, errors.New("session secret is empty")
	}
	if opts.Name == "" {
		opts.Name = "session"
	}
	if opts.TTL <= 0 {
		opts.TTL = 12 * time.Hour
	}
	return &CookieStore{secret: []byte(secret), opts: opts, now: time.Now}, nil
}

type sessionClaims struct {
	payload
	jwt.RegisteredClaims
}

func (s *CookieStore) Load(r *http.Request) (*Session, error) {
	c, err := r.Cookie(s.opts.Name)
	if err != nil || c.Value == "" {
		return NewSession(), nil
	}
	p, err := s.parse(c.Value)
	if err != nil {
		return NewSession(), nil
	}
	return sessionFrom(*p), nil
}

func (s *CookieStore) Save(w http.ResponseWriter, sess *Session) error {
	if !sess.Dirty() {
		return nil
	}
	if sess.empty() {
		s.opts.expire(w)
		return nil
	}
	signed, err := s.sign(sess.payload())
	if err != nil {
		return err
	}
	http.SetCookie(w, s.opts.cookie(signed, int(s.opts.TTL.Seconds())))
	return nil
}

func (s *CookieStore) sign(p payload) (string, error) {
	now := s.now()
	claims := sessionClaims{
		payload: p,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.opts.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// parse validates the token signature and expiry.
func (s *CookieStore) parse(tokenStr string) (*payload, error) {
	var claims sessionClaims
	tok, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, err
	}
	return &claims.payload, nil
}
