package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/khadijaBOUCHAMA/Parking-Iot-Blockchaine/rpc/oracle"
	"github.com/khadijaBOUCHAMA/Parking-Iot-Blockchaine/rpc/parking"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"gopkg.in/yaml.v3"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	parkingAddr := flag.String("parking", "", "Address of the Parking contract")
	oracleAddr := flag.String("oracle", "", "Address of the Oracle contract")
	out := flag.String("out", "", "Output file (stdout if empty)")
	raw := flag.Bool("raw", false, "Include raw contract storage (requires state root service)")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *parkingAddr == "" && *oracleAddr == "":
		log.Fatal("at least one contract address is required")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var w io.Writer = os.Stdout

	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal(fmt.Errorf("create output file: %w", err))
		}
		defer f.Close()

		w = f
	}

	err := _dump(ctx, w, dumpPrm{
		endpoint: *neoRPCEndpoint,
		parking:  *parkingAddr,
		oracle:   *oracleAddr,
		raw:      *raw,
	})
	if err != nil {
		log.Fatal(err)
	}

	if *out != "" {
		log.Printf("contract state is successfully dumped to '%s'\n", *out)
	}
}

type dumpPrm struct {
	endpoint string
	parking  string
	oracle   string
	raw      bool
}

func _dump(ctx context.Context, w io.Writer, prm dumpPrm) error {
	var (
		parkingHash, oracleHash util.Uint160
		err                     error
	)

	if prm.parking != "" {
		parkingHash, err = parseContractAddress(prm.parking)
		if err != nil {
			return fmt.Errorf("invalid Parking contract address: %w", err)
		}
	}

	if prm.oracle != "" {
		oracleHash, err = parseContractAddress(prm.oracle)
		if err != nil {
			return fmt.Errorf("invalid Oracle contract address: %w", err)
		}
	}

	b, err := newRemoteBlockchain(ctx, prm.endpoint)
	if err != nil {
		return fmt.Errorf("init remote blockchain: %w", err)
	}

	defer b.close()

	s := snapshot{Block: b.currentBlock}

	var spots []int64

	if prm.parking != "" {
		log.Println("Processing Parking contract...")

		s.Parking, err = collectParking(parkingHash, parking.NewReader(b.inv, parkingHash))
		if err != nil {
			return fmt.Errorf("dump Parking contract: %w", err)
		}

		if prm.raw {
			err = b.iterateContractStorage(parkingHash, storageCollector(&s.Parking.Storage))
			if err != nil {
				return fmt.Errorf("iterate Parking contract storage: %w", err)
			}
		}

		for i := range s.Parking.Spots {
			spots = append(spots, s.Parking.Spots[i].ID)
		}
	}

	if prm.oracle != "" {
		log.Println("Processing Oracle contract...")

		s.Oracle, err = collectOracle(oracleHash, oracle.NewReader(b.inv, oracleHash), spots)
		if err != nil {
			return fmt.Errorf("dump Oracle contract: %w", err)
		}

		if prm.raw {
			err = b.iterateContractStorage(oracleHash, storageCollector(&s.Oracle.Storage))
			if err != nil {
				return fmt.Errorf("iterate Oracle contract storage: %w", err)
			}
		}
	}

	return writeSnapshot(w, s)
}

func writeSnapshot(w io.Writer, s snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	err := enc.Encode(s)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	return enc.Close()
}

// parseContractAddress accepts both Neo address and little-endian hex script
// hash.
func parseContractAddress(s string) (util.Uint160, error) {
	h, err := address.StringToUint160(s)
	if err == nil {
		return h, nil
	}

	h, errLE := util.Uint160DecodeStringLE(s)
	if errLE == nil {
		return h, nil
	}

	return h, errors.Join(err, errLE)
}
