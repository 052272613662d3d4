package ingest

import (
	"fmt"
	"os"
	"path/filepath"

	"mofachat/internal/logger"
)

const seedFilename = "mofa_services_overview.txt"

const seedDocument = `Ministry of Foreign Affairs of Saudi Arabia - Services Overview

Visa Services:
The Ministry of Foreign Affairs processes visit, business, and diplomatic visa
applications. Tourist visas are handled through the unified national visa
platform. Applicants should hold a passport valid for at least six months.

Consular Services:
Saudi citizens abroad can reach the nearest Saudi embassy or consulate for
passport renewal, document attestation, and emergency assistance.

Diplomatic Missions:
Saudi Arabia maintains embassies and consulates worldwide. Contact details for
each mission are published on the official MOFA portal at www.mofa.gov.sa.

For the most up-to-date requirements, always consult the official MOFA website
or the nearest Saudi diplomatic mission.
`

// seedIfEmpty writes the bundled default document on first run, when
// the docs directory holds no files yet.
func seedIfEmpty(docsDir string) error {
	entries, err := os.ReadDir(docsDir)
	if err != nil {
		return fmt.Errorf("ingest: read docs dir: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			return nil
		}
	}
	path := filepath.Join(docsDir, seedFilename)
	if err := os.WriteFile(path, []byte(seedDocument), 0o644); err != nil {
		return fmt.Errorf("ingest: seed default document: %w", err)
	}
	logger.Info("ingest: seeded default document %s", seedFilename)
	return nil
}
