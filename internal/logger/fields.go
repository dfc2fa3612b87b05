package logger

// Standard field keys for structured logging. Use these consistently across
// log statements so logs can be aggregated and queried by field.
const (
	// Request
	KeyRequestID = "request_id" // chi request ID for correlation
	KeyMethod    = "method"     // HTTP method
	KeyPath      = "path"       // HTTP request path
	KeyStatus    = "status"     // HTTP status code
	KeyDuration  = "duration"   // request duration in milliseconds

	// Client identification
	KeyClientIP = "client_ip" // client IP address
	KeySubject  = "subject"   // authenticated subject (user ID)
	KeyUsername = "username"  // human-readable username

	// Documents
	KeyDocument = "document" // document ID
	KeyOwner    = "owner"    // owning user ID
	KeyName     = "name"     // document display name
	KeyKind     = "kind"     // content kind (MIME type)
	KeySize     = "size"     // size in bytes
	KeyVersion  = "version"  // document content version

	// Quota
	KeyUsed  = "used"  // quota bytes used
	KeyLimit = "limit" // quota byte limit

	// Sharing
	KeyShare   = "share"   // share grant ID
	KeyGrantee = "grantee" // grantee user ID

	// Editor sessions
	KeySession    = "session"    // editor session ID
	KeyCapability = "capability" // session capability (read / read-write)

	// Storage backends
	KeyContentID = "content_id" // content store object key
	KeyStore     = "store"      // content store backend name
	KeyBucket    = "bucket"     // S3 bucket

	// Errors
	KeyError = "error" // error message
)
