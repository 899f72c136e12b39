/*
Package contracts provides access to Parking and Oracle contracts: it compiles
them from sources and reads or stores prebuilt NEF and manifest files.
*/
package contracts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/nspcc-dev/neo-go/cli/smartcontract"
	"github.com/nspcc-dev/neo-go/pkg/compiler"
	"github.com/nspcc-dev/neo-go/pkg/io"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
)

const (
	ParkingDir = "parking"
	OracleDir  = "oracle"

	nefName      = "contract.nef"
	manifestName = "manifest.json"
	configName   = "config.yml"
)

// Contract groups information about Neo contract ready for deployment.
type Contract struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

var (
	errInvalidNEF      = errors.New("invalid NEF")
	errInvalidManifest = errors.New("invalid manifest")
	errInvalidConfig   = errors.New("invalid contract config")

	// Both contracts are independent, the order is fixed for reproducible
	// deployment logs.
	allContracts = []string{
		OracleDir,
		ParkingDir,
	}
)

// Names returns directory names of all contracts in the order they're
// deployed.
func Names() []string {
	return append([]string(nil), allContracts...)
}

// Compile compiles the contract from sources located in dir. The manifest is
// built from config.yml found in the same directory.
func Compile(dir string) (Contract, error) {
	var c Contract

	ne, di, err := compiler.CompileWithOptions(dir, nil, nil)
	if err != nil {
		return c, fmt.Errorf("compile %s: %w", dir, err)
	}

	conf, err := smartcontract.ParseContractConfig(filepath.Join(dir, configName))
	if err != nil {
		return c, fmt.Errorf("%w: %w", errInvalidConfig, err)
	}

	o := &compiler.Options{}
	o.Name = conf.Name
	o.ContractEvents = conf.Events
	o.ContractSupportedStandards = conf.SupportedStandards
	o.Permissions = make([]manifest.Permission, len(conf.Permissions))
	for i := range conf.Permissions {
		o.Permissions[i] = manifest.Permission(conf.Permissions[i])
	}
	o.SafeMethods = conf.SafeMethods

	m, err := compiler.CreateManifest(di, o)
	if err != nil {
		return c, fmt.Errorf("%w: %w", errInvalidManifest, err)
	}

	c.NEF = *ne
	c.Manifest = *m

	return c, nil
}

// CompileAll compiles all contracts from the sources root (the directory
// holding parking/ and oracle/). Contracts are returned in the order of Names.
func CompileAll(root string) ([]Contract, error) {
	var res = make([]Contract, 0, len(allContracts))

	for _, name := range allContracts {
		c, err := Compile(filepath.Join(root, name))
		if err != nil {
			return nil, err
		}

		res = append(res, c)
	}

	return res, nil
}

// Read reads prebuilt artifacts of all contracts from fsys. Each contract is
// expected in its own directory named as in Names.
func Read(fsys fs.FS) ([]Contract, error) {
	return read(fsys, allContracts)
}

func read(fsys fs.FS, dirs []string) ([]Contract, error) {
	var res = make([]Contract, 0, len(dirs))

	for i := range dirs {
		c, err := ReadDir(fsys, dirs[i])
		if err != nil {
			return nil, fmt.Errorf("read contract %s: %w", dirs[i], err)
		}

		res = append(res, c)
	}

	return res, nil
}

// ReadDir reads contract.nef and manifest.json of the single contract located
// in dir of fsys.
func ReadDir(fsys fs.FS, dir string) (Contract, error) {
	var c Contract

	// fs.FS always uses "/", so filepath.Join() is not applicable.
	fNEF, err := fsys.Open(path.Join(dir, nefName))
	if err != nil {
		return c, fmt.Errorf("open NEF: %w", err)
	}
	defer fNEF.Close()

	fManifest, err := fsys.Open(path.Join(dir, manifestName))
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

// Store writes contract artifacts into dir so that ReadDir can read them
// back. The directory is created if missing.
func Store(dir string, c Contract) error {
	bNEF, err := c.NEF.Bytes()
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidNEF, err)
	}

	bManifest, err := json.Marshal(c.Manifest)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidManifest, err)
	}

	err = os.MkdirAll(dir, 0o755)
	if err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	err = os.WriteFile(filepath.Join(dir, nefName), bNEF, 0o644)
	if err != nil {
		return fmt.Errorf("write NEF: %w", err)
	}

	err = os.WriteFile(filepath.Join(dir, manifestName), bManifest, 0o644)
	if err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}
