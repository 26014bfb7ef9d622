package model

import "github.com/rotisserie/eris"

// ErrStructural marks a broken data invariant (duplicate reference keys,
// records without a household). Runs that hit it abort rather than emit
// partial output.
var ErrStructural = eris.New("structural invariant violated")
