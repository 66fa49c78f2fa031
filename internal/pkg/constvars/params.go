package constvars

const (
	HeaderXRequestID     = "X-Request-ID"
	HeaderAuthorization  = "Authorization"
	HeaderContentType    = "Content-Type"
	HeaderAccept         = "Accept"
	HeaderRetryAfter     = "Retry-After"
	AuthorizationBearer  = "Bearer "
	JWTClaimSubject      = "sub"
	JWTClaimExpiration   = "exp"
	JWTClaimIssuedAt     = "iat"
	ClassifierDiagnosis  = "/api/v1/diagnosis"
	DefaultClassifierURL = "https://neonatal-bn-api.onrender.com"
)
