package listing

import "errors"

// Sentinel errors for the fetch/parse stage. All of them are terminal for the
// identifier they occurred on; none of them aborts a sweep.
var (
	// ErrHTTPStatus marks a non-2xx response from the listing endpoint.
	ErrHTTPStatus = errors.New("unexpected http status")
	// ErrEmptyBody marks a response whose html field is missing or empty.
	ErrEmptyBody = errors.New("empty listing body")
	// ErrNoEpisodeItems marks markup that contains no episode entries.
	ErrNoEpisodeItems = errors.New("no episode items in markup")
	// ErrEmptyListing marks an empty item set handed to range inference.
	ErrEmptyListing = errors.New("empty listing")
	// ErrNoNumericEpisodes marks a listing whose episode ids were all non-numeric.
	ErrNoNumericEpisodes = errors.New("no numeric episode ids")
	// ErrMissingNameToken marks a listing whose first item carries no
	// extractable /watch/ name token.
	ErrMissingNameToken = errors.New("missing name token")
)
