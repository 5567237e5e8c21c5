package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "VCF2CSV/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "vcf2csv"
	AppID             = "com.github.tartampluch.go-vcf2csv"
	KeyringService    = "com.github.tartampluch.go-vcf2csv"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs.
	FilePermUserRW fs.FileMode = 0600

	// FilePermTable represents -rw-r--r--, the mode of produced tables.
	FilePermTable fs.FileMode = 0644

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion = "version"
	FlagDebug   = "debug"
	FlagOutput  = "output"
	FlagUser    = "user"
	FlagLang    = "lang"
	FlagServe   = "serve"
	FlagPort    = "port"

	FlagDescVersion = "Show application version and exit"
	FlagDescDebug   = "Enable debug logging to stdout"
	FlagDescOutput  = "Output CSV path (default: input name with .csv extension)"
	FlagDescUser    = "HTTP Basic user for a remote source (password read from the OS keyring)"
	FlagDescLang    = "Language of console messages (en, fr)"
	FlagDescServe   = "Serve the produced table over HTTP on localhost until interrupted"
	FlagDescPort    = "Port used by -serve"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Default Values
// -----------------------------------------------------------------------------

const (
	DefaultInputFile  = "infile.vcf"
	DefaultOutputName = "contacts.csv"
	DefaultPort       = "18081"
	DefaultLanguage   = "en"
)

// SupportedLanguages defines the list of console languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Output Schema
// -----------------------------------------------------------------------------

// Column names of the contacts importer table.
const (
	ColFirstName       = "First Name"
	ColMiddleName      = "Middle Name"
	ColLastName        = "Last Name"
	ColTitle           = "Title"
	ColSuffix          = "Suffix"
	ColNickname        = "Nickname"
	ColEmail1          = "E-mail Address"
	ColEmail2          = "E-mail 2 Address"
	ColEmail3          = "E-mail 3 Address"
	ColHomePhone       = "Home Phone"
	ColHomePhone2      = "Home Phone 2"
	ColBusinessPhone   = "Business Phone"
	ColBusinessPhone2  = "Business Phone 2"
	ColMobilePhone     = "Mobile Phone"
	ColOtherPhone      = "Other Phone"
	ColPrimaryPhone    = "Primary Phone"
	ColIMAddress       = "IMAddress"
	ColJobTitle        = "Job Title"
	ColDepartment      = "Department"
	ColCompany         = "Company"
	ColOfficeLocation  = "Office Location"
	ColManagerName     = "Manager's Name"
	ColAssistantName   = "Assistant's Name"
	ColAssistantPhone  = "Assistant's Phone"
	ColHomeStreet      = "Home Street"
	ColHomeCity        = "Home City"
	ColHomeState       = "Home State"
	ColHomePostalCode  = "Home Postal Code"
	ColHomeCountry     = "Home Country/Region"
	ColPersonalWebPage = "Personal Web Page"
	ColSpouse          = "Spouse"
	ColSchools         = "Schools"
	ColHobby           = "Hobby"
	ColLocation        = "Location"
	ColWebPage         = "Web Page"
	ColBirthday        = "Birthday"
	ColAnniversary     = "Anniversary"
	ColNotes           = "Notes"
	ColKind            = "kind"
	ColGender          = "gender"
	ColUID             = "UID"
)

// Columns is the header of the produced table, in order.
// It must not be modified at runtime.
var Columns = []string{
	ColFirstName,
	ColMiddleName,
	ColLastName,
	ColTitle,
	ColSuffix,
	ColNickname,
	ColEmail1,
	ColEmail2,
	ColEmail3,
	ColHomePhone,
	ColHomePhone2,
	ColBusinessPhone,
	ColBusinessPhone2,
	ColMobilePhone,
	ColOtherPhone,
	ColPrimaryPhone,
	ColIMAddress,
	ColJobTitle,
	ColDepartment,
	ColCompany,
	ColOfficeLocation,
	ColManagerName,
	ColAssistantName,
	ColAssistantPhone,
	ColHomeStreet,
	ColHomeCity,
	ColHomeState,
	ColHomePostalCode,
	ColHomeCountry,
	ColPersonalWebPage,
	ColSpouse,
	ColSchools,
	ColHobby,
	ColLocation,
	ColWebPage,
	ColBirthday,
	ColAnniversary,
	ColNotes,
	ColKind,
	ColGender,
	ColUID,
}

// EmailColumns lists the e-mail slots in fill order.
var EmailColumns = []string{ColEmail1, ColEmail2, ColEmail3}

// -----------------------------------------------------------------------------
// Standards: vCard
// -----------------------------------------------------------------------------

const (
	// Phone category tags (compared upper-cased).
	TelTypeCell = "CELL"
	TelTypeHome = "HOME"
	TelTypeWork = "WORK"

	// Separators used inside structured and multi-valued properties.
	VCardComponentSep = ";"
	VCardListSep      = ","
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	ExtCSV = ".csv"

	// TempFilePattern is used for the staging file of atomic writes.
	TempFilePattern = ".vcf2csv-*.tmp"

	// MaxInputSize caps both local and remote inputs.
	MaxInputSize = 256 * 1024 * 1024 // 256MB

	// Limits
	MinPort = 1
	MaxPort = 65535
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = MaxInputSize
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType        = "Content-Type"
	HeaderContentDisposition = "Content-Disposition"
	HeaderCacheControl       = "Cache-Control"
	HeaderETag               = "ETag"
	HeaderLastModified       = "Last-Modified"
	HeaderRetryAfter         = "Retry-After"
	HeaderAllow              = "Allow"
	HeaderXContentType       = "X-Content-Type-Options"
	HeaderUserAgent          = "User-Agent"
	HeaderIfNoneMatch        = "If-None-Match"
	HeaderIfModifiedSince    = "If-Modified-Since"

	MimeTextCSV         = "text/csv; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
	// FormatAttachment expects the download file name.
	FormatAttachment = `attachment; filename="%s"`
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyConverted     = "converted"      // Requires Count, Path
	TKeyConvertedZero = "converted_zero" // Requires Path
	TKeyServing       = "serving"        // Requires URL
	TKeyFailed        = "failed"         // Requires Error
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInputEmpty       = "configuration error: input path is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrInputRead        = "failed to read input"
	ErrInputTooLarge    = "input exceeds maximum size"
	ErrEncoding         = "input is not valid UTF-8"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrCSVWrite         = "failed to write CSV table"
	ErrOutputCreate     = "failed to create output file"
	ErrOutputCommit     = "failed to move output file into place"
	ErrOutputIsInput    = "output path would overwrite the input file"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrPortInvalid      = "server port must be a number between 1 and 65535"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Table not ready, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStop       = "Application stopped gracefully"
	MsgAppStarting   = "Starting application"
	MsgConvStarted   = "Conversion started"
	MsgConvSuccess   = "Conversion successful"
	MsgCardDecoded   = "vCard decoded"
	MsgTableWritten  = "CSV table written"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Table cache updated"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgPassFail      = "Password retrieval failed (might be empty)"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgBOMStripped   = "Byte order mark stripped from input"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyInput     = "input"
	LogKeyOutput    = "output"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyUser      = "user"
	LogKeyTotal     = "total_cards"
	LogKeyRows      = "rows_written"
	LogKeyIndex     = "index"
	LogKeyUID       = "uid"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyStats     = "stats"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompEngine  = "engine"
	CompReader  = "reader"
	CompWriter  = "writer"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompMain    = "main"
	CompI18n    = "locale"
	CompKeyring = "keyring"
)
