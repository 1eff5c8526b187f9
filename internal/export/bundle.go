/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */


package export

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"

	"brandgen/internal/version"
)

// ManifestName is the index entry written at the root of every bundle.
const ManifestName = "manifest.json"

// BundleManifest lists the assets packed into a bundle.
type BundleManifest struct {
	Generator string        `json:"generator"`
	Created   time.Time     `json:"created"`
	Assets    []BundleAsset `json:"assets"`
}

type BundleAsset struct {
	Scene  string `json:"scene"`
	File   string `json:"file"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Bytes  int64  `json:"bytes"`
	SHA256 string `json:"sha256"`
}

// WriteBundle packages the files of results into a zip archive at outPath
// together with a manifest. Skipped results are included as long as their
// file exists. PNG entries are stored since they are already deflated.
func WriteBundle(outPath string, results []Result) (BundleManifest, error) {
	if !strings.HasSuffix(strings.ToLower(outPath), ".zip") {
		outPath += ".zip"
	}
	man := BundleManifest{Generator: "brandgen " + version.String(), Created: time.Now().UTC()}
	assets := make([][]byte, 0, len(results))
	for _, r := range results {
		data, err := os.ReadFile(r.Path)
		if err != nil {
			return man, fmt.Errorf("bundle %s: %w", r.Scene, err)
		}
		sum := sha256.Sum256(data)
		man.Assets = append(man.Assets, BundleAsset{
			Scene: r.Scene, File: filepath.Base(r.Path),
			Width: r.Width, Height: r.Height, Bytes: int64(len(data)),
			SHA256: hex.EncodeToString(sum[:]),
		})
		assets = append(assets, data)
	}
	manifest, err := json.MarshalIndent(man, "", "  ")
	if err != nil {
		return man, fmt.Errorf("build manifest: %w", err)
	}

	_, err = writeAtomic(outPath, func(f *os.File) error {
		zw := zip.NewWriter(f)
		for i, a := range man.Assets {
			if err := addZipFile(zw, a.File, zip.Store, man.Created, assets[i]); err != nil {
				return fmt.Errorf("zip add %s: %w", a.File, err)
			}
		}
		if err := addZipFile(zw, ManifestName, zip.Deflate, man.Created, manifest); err != nil {
			return fmt.Errorf("zip add manifest: %w", err)
		}
		return zw.Close()
	})
	return man, err
}

func addZipFile(zw *zip.Writer, name string, method uint16, mod time.Time, data []byte) error {
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method, Modified: mod})
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
