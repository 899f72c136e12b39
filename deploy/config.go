package deploy

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/khadijaBOUCHAMA/Parking-Iot-Blockchaine/contracts/parking/parkingconst"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"gopkg.in/yaml.v3"
)

// Default timeouts of the RPC connection.
const (
	DefaultDialTimeout    = 15 * time.Second
	DefaultRequestTimeout = 15 * time.Second
)

// Config is the deployment configuration stored in a YAML file.
type Config struct {
	RPC       RPCConfig       `yaml:"rpc"`
	Wallet    WalletConfig    `yaml:"wallet"`
	Contracts ContractsConfig `yaml:"contracts"`
	Parking   ParkingConfig   `yaml:"parking"`
	Oracle    OracleConfig    `yaml:"oracle"`
}

// RPCConfig describes connection to the Neo RPC server.
type RPCConfig struct {
	Endpoint       string        `yaml:"endpoint"`
	DialTimeout    time.Duration `yaml:"dial_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// WalletConfig points to the deployer account. Empty Address selects the
// default wallet account.
type WalletConfig struct {
	Path    string `yaml:"path"`
	Address string `yaml:"address"`
}

// ContractsConfig tells where contracts are taken from: either Go sources
// compiled on the fly or prebuilt NEF and manifest files.
type ContractsConfig struct {
	Sources     string `yaml:"sources"`
	Artifacts   string `yaml:"artifacts"`
	AllowUpdate bool   `yaml:"allow_update"`
}

// ParkingConfig holds Parking contract parameters. Empty Owner means the
// deployer account.
type ParkingConfig struct {
	Owner      string `yaml:"owner"`
	Reporter   string `yaml:"reporter"`
	FeePercent int64  `yaml:"fee_percent"`
}

// OracleConfig holds Oracle contract parameters. Empty Owner means the
// deployer account.
type OracleConfig struct {
	Owner          string       `yaml:"owner"`
	Nodes          []NodeConfig `yaml:"nodes"`
	RemoveUnlisted bool         `yaml:"remove_unlisted"`
}

// NodeConfig describes an oracle node to be registered.
type NodeConfig struct {
	Address string `yaml:"address"`
	Label   string `yaml:"label"`
}

var errEmptyConfig = errors.New("empty config")

// LoadConfig reads and validates the configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes YAML configuration, fills defaults and validates the
// result. Unknown fields are rejected.
func ParseConfig(data []byte) (*Config, error) {
	var c Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(&c)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errEmptyConfig
		}
		return nil, fmt.Errorf("decode YAML: %w", err)
	}

	if c.RPC.DialTimeout == 0 {
		c.RPC.DialTimeout = DefaultDialTimeout
	}
	if c.RPC.RequestTimeout == 0 {
		c.RPC.RequestTimeout = DefaultRequestTimeout
	}

	err = c.Validate()
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch {
	case c.RPC.Endpoint == "":
		return errors.New("missing RPC endpoint")
	case c.RPC.DialTimeout < 0:
		return errors.New("negative RPC dial timeout")
	case c.RPC.RequestTimeout < 0:
		return errors.New("negative RPC request timeout")
	case c.Wallet.Path == "":
		return errors.New("missing wallet path")
	case c.Contracts.Sources == "" && c.Contracts.Artifacts == "":
		return errors.New("either contract sources or artifacts must be set")
	case c.Contracts.Sources != "" && c.Contracts.Artifacts != "":
		return errors.New("contract sources and artifacts are mutually exclusive")
	case c.Parking.FeePercent < 0 || c.Parking.FeePercent > parkingconst.MaxFeePercent:
		return fmt.Errorf("parking fee percent %d is out of [0, %d] range", c.Parking.FeePercent, parkingconst.MaxFeePercent)
	}

	for _, a := range []struct {
		name     string
		value    string
		optional bool
	}{
		{name: "wallet address", value: c.Wallet.Address, optional: true},
		{name: "parking owner", value: c.Parking.Owner, optional: true},
		{name: "parking reporter", value: c.Parking.Reporter},
		{name: "oracle owner", value: c.Oracle.Owner, optional: true},
	} {
		if a.value == "" && a.optional {
			continue
		}

		_, err := parseAddress(a.value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", a.name, err)
		}
	}

	seen := make(map[util.Uint160]struct{}, len(c.Oracle.Nodes))

	for i, n := range c.Oracle.Nodes {
		h, err := parseAddress(n.Address)
		if err != nil {
			return fmt.Errorf("invalid address of oracle node #%d: %w", i, err)
		}

		if n.Label == "" {
			return fmt.Errorf("missing label of oracle node #%d", i)
		}

		if _, ok := seen[h]; ok {
			return fmt.Errorf("duplicated oracle node %s", n.Address)
		}
		seen[h] = struct{}{}
	}

	return nil
}

// ParkingPrm converts the Parking section into deployment parameters.
// deployer becomes the owner unless it is set explicitly.
func (c *Config) ParkingPrm(deployer util.Uint160, common CommonDeployPrm) (ParkingContractPrm, error) {
	var res = ParkingContractPrm{
		Common:     common,
		Owner:      deployer,
		FeePercent: c.Parking.FeePercent,
	}

	var err error

	if c.Parking.Owner != "" {
		res.Owner, err = parseAddress(c.Parking.Owner)
		if err != nil {
			return res, fmt.Errorf("invalid parking owner: %w", err)
		}
	}

	res.Reporter, err = parseAddress(c.Parking.Reporter)
	if err != nil {
		return res, fmt.Errorf("invalid parking reporter: %w", err)
	}

	return res, nil
}

// OraclePrm converts the Oracle section into deployment parameters.
// deployer becomes the owner unless it is set explicitly.
func (c *Config) OraclePrm(deployer util.Uint160, common CommonDeployPrm) (OracleContractPrm, error) {
	var res = OracleContractPrm{
		Common:         common,
		Owner:          deployer,
		RemoveUnlisted: c.Oracle.RemoveUnlisted,
		Nodes:          make([]OracleNode, 0, len(c.Oracle.Nodes)),
	}

	var err error

	if c.Oracle.Owner != "" {
		res.Owner, err = parseAddress(c.Oracle.Owner)
		if err != nil {
			return res, fmt.Errorf("invalid oracle owner: %w", err)
		}
	}

	for i := range c.Oracle.Nodes {
		h, err := parseAddress(c.Oracle.Nodes[i].Address)
		if err != nil {
			return res, fmt.Errorf("invalid address of oracle node #%d: %w", i, err)
		}

		res.Nodes = append(res.Nodes, OracleNode{
			Address: h,
			Label:   c.Oracle.Nodes[i].Label,
		})
	}

	return res, nil
}

func parseAddress(s string) (util.Uint160, error) {
	if s == "" {
		return util.Uint160{}, errors.New("empty address")
	}

	return address.StringToUint160(s)
}
