package commands

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Bren2010/leaflog/tree/accumulator"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type rootResponse struct {
	Root accumulator.Hash `json:"root"`
	Size int              `json:"size"`
}

type leavesResponse struct {
	Size   int                `json:"size"`
	Leaves []accumulator.Hash `json:"leaves"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// valueHash returns the leaf hash for an integer value: the SHA-256 digest of
// its 4-byte little-endian encoding.
func valueHash(v uint32) accumulator.Hash {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return sha256.Sum256(buf[:])
}

func treeURL(suffix string) string {
	return fmt.Sprintf("%s/v1/tree/%s/%s", viper.GetString("url"), viper.GetString("tree"), suffix)
}

// decodeResponse parses an API response into out, converting non-200
// responses into errors.
func decodeResponse(res *http.Response, out interface{}) error {
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var parsed errorResponse
		if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
			return fmt.Errorf("server returned status %v", res.StatusCode)
		}
		return fmt.Errorf("server returned status %v: %v", res.StatusCode, parsed.Error)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func insertLeaf(leaf accumulator.Hash) (*rootResponse, error) {
	url := treeURL("leaves")
	logrus.WithFields(logrus.Fields{"url": url, "hash": leaf}).Debug("Submitting leaf.")

	body, err := json.Marshal(map[string]accumulator.Hash{"hash": leaf})
	if err != nil {
		return nil, err
	}
	res, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	out := new(rootResponse)
	if err := decodeResponse(res, out); err != nil {
		return nil, err
	}
	return out, nil
}

func fetchRoot() (*rootResponse, error) {
	res, err := http.Get(treeURL("root"))
	if err != nil {
		return nil, err
	}

	out := new(rootResponse)
	if err := decodeResponse(res, out); err != nil {
		return nil, err
	}
	return out, nil
}

func fetchLeaves() (*leavesResponse, error) {
	res, err := http.Get(treeURL("leaves"))
	if err != nil {
		return nil, err
	}

	out := new(leavesResponse)
	if err := decodeResponse(res, out); err != nil {
		return nil, err
	}
	return out, nil
}
