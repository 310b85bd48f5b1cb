package client

import "time"

const (
	// DefaultTimeout bounds every backend call.
	DefaultTimeout = 15 * time.Second

	// QuoteTimeout is for multipart quote uploads carrying design files
	QuoteTimeout = 2 * time.Minute
)

const (
	LoginPath        = "/api/auth/login"
	VerifyOTPPath    = "/api/auth/verify-otp"
	TestimonialsPath = "/api/testimonials"
	ProjectsPath     = "/api/projects"
	QuotePath        = "/api/quote/submit-quote"

	publishedSuffix = "/published"
)
