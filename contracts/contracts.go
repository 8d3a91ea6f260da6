/*
Package contracts provides access to compiled MPT contracts.
*/
package contracts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/nspcc-dev/neo-go/pkg/io"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
)

const (
	tokenDir     = "token"
	crowdsaleDir = "crowdsale"
	vestingDir   = "vesting"

	nefName      = "contract.nef"
	manifestName = "manifest.json"
)

// Contract groups information about a compiled Neo contract.
type Contract struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

var (
	errInvalidNEF      = errors.New("invalid NEF")
	errInvalidManifest = errors.New("invalid manifest")

	// Deploy order: the token ledger goes first, the contracts hooked
	// into it follow.
	contractDirs = []string{
		tokenDir,
		crowdsaleDir,
		vestingDir,
	}
)

// GetAll reads the whole set of MPT contracts from the directory with
// compilation artifacts. They're returned in the order they're supposed
// to be deployed starting from the token contract.
func GetAll(dir string) ([]Contract, error) {
	return read(os.DirFS(dir), contractDirs)
}

// read same as GetAll but allows to override the source fs.FS.
func read(_fs fs.FS, dirs []string) ([]Contract, error) {
	var res = make([]Contract, 0, len(dirs))

	for i := range dirs {
		c, err := readContractFromDir(_fs, dirs[i])
		if err != nil {
			return nil, fmt.Errorf("read contract %s: %w", dirs[i], err)
		}

		res = append(res, c)
	}

	return res, nil
}

func readContractFromDir(_fs fs.FS, dir string) (Contract, error) {
	var c Contract

	// fs.FS uses "/" even on Windows, so filepath.Join() is not
	// applicable.
	fNEF, err := _fs.Open(dir + "/" + nefName)
	if err != nil {
		return c, fmt.Errorf("open NEF: %w", err)
	}
	defer fNEF.Close()

	fManifest, err := _fs.Open(dir + "/" + manifestName)
	if err != nil {
		return c, fmt.Errorf("open manifest: %w", err)
	}
	defer fManifest.Close()

	bReader := io.NewBinReaderFromIO(fNEF)
	c.NEF.DecodeBinary(bReader)
	if bReader.Err != nil {
		return c, fmt.Errorf("%w: %w", errInvalidNEF, bReader.Err)
	}

	err = json.NewDecoder(fManifest).Decode(&c.Manifest)
	if err != nil {
		return c, fmt.Errorf("%w: %w", errInvalidManifest, err)
	}

	return c, nil
}
