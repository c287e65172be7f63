package attitude

import "errors"

// ErrSingularMatrix indicates a 3x3 matrix with |det| below SingularTol.
var ErrSingularMatrix = errors.New("attitude: matrix is singular (det ~ 0)")

// SingularTol is the determinant magnitude below which Inverse fails.
const SingularTol = 1e-15
