package earthquake

import (
	"strconv"

	"github.com/mrz1836/git-eq/internal/constants"
)

// BranchName is the name of the emergency branch:
// earthquake/{current_branch}-{user_identity}-{timestamp}.
//
// Parts are embedded verbatim. An empty current branch (detached HEAD)
// produces "earthquake/-{identity}-{timestamp}".
type BranchName struct {
	name string
}

// NewBranchName composes a BranchName from its parts.
func NewBranchName(currentBranch, identity string, epoch uint64) BranchName {
	return BranchName{
		name: constants.BranchPrefix + currentBranch + "-" + identity + "-" + strconv.FormatUint(epoch, 10),
	}
}

// String returns the full branch name.
func (b BranchName) String() string {
	return b.name
}
