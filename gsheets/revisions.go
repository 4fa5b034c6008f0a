package gsheets

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/drive/v3"
)

// Revision identifies the most recent stored version of a spreadsheet file.
type Revision struct {
	ID       string
	Modified time.Time
}

// LatestRevision walks the Drive revision list for a file and returns the
// newest revision. It is used to skip downloads of spreadsheets that have
// not changed since the last run.
func LatestRevision(ctx context.Context, gdrive *drive.Service, fileID string) (*Revision, error) {
	page := ""
	latest := Revision{}

	for {
		call := drive.NewRevisionsService(gdrive).List(fileID)
		if page != "" {
			call.PageToken(page)
		}

		revisions, err := call.Context(ctx).Do()
		if err != nil {
			return nil, err
		}

		for _, revision := range revisions.Revisions {
			modified, err := time.Parse("2006-01-02T15:04:05.999Z", revision.ModifiedTime)
			if err != nil {
				return nil, err
			}

			if latest.Modified.Before(modified) {
				latest.ID = revision.Id
				latest.Modified = modified
			}
		}

		if page = revisions.NextPageToken; page == "" {
			break
		}
	}

	if latest.Modified.IsZero() {
		return nil, fmt.Errorf("unable to identify latest revision for file ID %s", fileID)
	}

	return &latest, nil
}
