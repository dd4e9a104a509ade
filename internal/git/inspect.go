package git

import (
	"errors"
	"fmt"
	"slices"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrNotRepository is returned by Inspect when dir is not a git repository.
var ErrNotRepository = errors.New("not a git repository")

// Info is a read-only snapshot of a repository's layout.
type Info struct {
	Dir      string
	Branch   string // empty when HEAD is detached
	Remotes  []string
	Detached bool
}

// HasRemote reports whether a remote with the given name is configured.
func (i *Info) HasRemote(name string) bool {
	return slices.Contains(i.Remotes, name)
}

// InspectOptions controls repository discovery.
type InspectOptions struct {
	// DetectParent walks up from dir to find the enclosing repository.
	// Without it dir itself must hold .git (a directory or a gitdir file).
	DetectParent bool
}

// Inspect opens dir with go-git without touching the working tree.
func Inspect(dir string, opts InspectOptions) (*Info, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit:          opts.DetectParent,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", dir, ErrNotRepository)
		}
		return nil, fmt.Errorf("open repository %s: %w", dir, err)
	}

	info := &Info{Dir: dir}

	remotes, err := repo.Remotes()
	if err != nil {
		return nil, fmt.Errorf("list remotes in %s: %w", dir, err)
	}
	for _, r := range remotes {
		info.Remotes = append(info.Remotes, r.Config().Name)
	}
	slices.Sort(info.Remotes)

	head, err := repo.Head()
	switch {
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		// unborn branch; read the symbolic HEAD for its name
		if ref, rerr := repo.Storer.Reference(plumbing.HEAD); rerr == nil && ref.Type() == plumbing.SymbolicReference {
			info.Branch = ref.Target().Short()
		}
	case err != nil:
		return nil, fmt.Errorf("read HEAD in %s: %w", dir, err)
	default:
		if head.Name().IsBranch() {
			info.Branch = head.Name().Short()
		} else {
			info.Detached = true
		}
	}

	return info, nil
}
