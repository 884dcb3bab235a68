package services

import (
	"context"
	"image"
	"image/color"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wenlng/go-captcha/v2/rotate"
)

// CaptchaService gates the admin login behind a rotate captcha.
//
// Flow: Generate returns a challenge ID plus two base64 images; the
// dashboard renders them and submits the rotation angle the user applied
// together with the challenge ID. Challenges live in memory with a TTL and
// are consumed on first verification attempt, pass or fail.
type CaptchaService interface {
	GenerateRotate(ctx context.Context) (*RotateChallenge, error)
	VerifyRotate(ctx context.Context, challengeID string, userAngle float64) bool
}

type RotateChallenge struct {
	ID                string
	MasterImageBase64 string
	ThumbImageBase64  string
}

type captchaServiceImpl struct {
	rotator rotate.Captcha
	cache   *challengeCache
	padding int // tolerance for angle validation, degrees
}

// NewCaptchaServiceRotate constructs a CaptchaService using rotate mode.
// ttl bounds a challenge's lifetime; padding is the acceptable angle
// difference in degrees; imgSizePx is the square image size.
func NewCaptchaServiceRotate(ttl time.Duration, padding int, imgSizePx int) (CaptchaService, error) {
	if imgSizePx <= 0 {
		imgSizePx = 220
	}

	builder := rotate.NewBuilder(
		rotate.WithImageSquareSize(imgSizePx),
	)
	builder.SetResources(
		rotate.WithImages(captchaBackgrounds(3, imgSizePx)),
	)

	return &captchaServiceImpl{
		rotator: builder.Make(),
		cache:   newChallengeCache(ttl),
		padding: padding,
	}, nil
}

func (s *captchaServiceImpl) GenerateRotate(ctx context.Context) (*RotateChallenge, error) {
	captData, err := s.rotator.Generate()
	if err != nil {
		return nil, err
	}

	block := captData.GetData()
	if block == nil {
		return nil, err
	}

	masterB64, err := captData.GetMasterImage().ToBase64()
	if err != nil {
		return nil, err
	}
	thumbB64, err := captData.GetThumbImage().ToBase64()
	if err != nil {
		return nil, err
	}

	challengeID := uuid.New().String()
	s.cache.put(challengeID, block.Angle)

	return &RotateChallenge{
		ID:                challengeID,
		MasterImageBase64: masterB64,
		ThumbImageBase64:  thumbB64,
	}, nil
}

func (s *captchaServiceImpl) VerifyRotate(ctx context.Context, challengeID string, userAngle float64) bool {
	targetAngle, ok := s.cache.take(challengeID)
	if !ok {
		return false
	}

	return rotate.Validate(int(math.Round(userAngle)), targetAngle, s.padding)
}

// challengeCache holds pending challenges in memory with a TTL. A challenge
// is removed on first verification attempt.
type challengeCache struct {
	mu      sync.Mutex
	entries map[string]challengeEntry
	ttl     time.Duration
}

type challengeEntry struct {
	angle     int
	expiresAt time.Time
}

func newChallengeCache(ttl time.Duration) *challengeCache {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	c := &challengeCache{
		entries: make(map[string]challengeEntry),
		ttl:     ttl,
	}
	go c.sweep()
	return c
}

func (c *challengeCache) put(id string, angle int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = challengeEntry{angle: angle, expiresAt: time.Now().Add(c.ttl)}
}

// take consumes a challenge, returning its angle if still valid.
func (c *challengeCache) take(id string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[id]
	if !ok {
		return 0, false
	}
	delete(c.entries, id)
	if time.Now().After(entry.expiresAt) {
		return 0, false
	}
	return entry.angle, true
}

func (c *challengeCache) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		c.mu.Lock()
		for id, entry := range c.entries {
			if now.After(entry.expiresAt) {
				delete(c.entries, id)
			}
		}
		c.mu.Unlock()
	}
}

// captchaBackgrounds renders simple striped background images so the
// rotate captcha needs no bundled assets.
func captchaBackgrounds(n, size int) []image.Image {
	if n <= 0 {
		n = 1
	}
	imgs := make([]image.Image, 0, n)
	for i := 0; i < n; i++ {
		imgs = append(imgs, stripedImage(size, size))
	}
	return imgs
}

func stripedImage(w, h int) image.Image {
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	stripe := 12 + rand.Intn(10)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			band := ((x + y) / stripe) % 2
			base := uint8(170)
			if band == 1 {
				base = 210
			}
			noise := uint8(rand.Intn(25))
			rgba.Set(x, y, color.RGBA{R: base - noise, G: base, B: base + noise/2, A: 255})
		}
	}
	return rgba
}
