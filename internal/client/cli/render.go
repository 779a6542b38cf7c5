package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/gallerykeeper/internal/client/imagefile"
	"github.com/dmitrijs2005/gallerykeeper/internal/client/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// printPhotos writes one row per photo. With admin set the visibility and
// size columns are included.
func printPhotos(w io.Writer, list []models.Photo, admin bool) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No photos.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if admin {
		fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tVISIBILITY\tSIZE\tUPLOADED")
	} else {
		fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tUPLOADED")
	}

	for _, p := range list {
		category := p.Category
		if category == "" {
			category = models.DefaultCategory
		}
		uploaded := "-"
		if !p.UploadedAt.IsZero() {
			uploaded = p.UploadedAt.Local().Format("2006-01-02")
		}

		if admin {
			visibility := "private"
			if p.IsPublic {
				visibility = "public"
			}
			size := "-"
			if p.FileSize > 0 {
				size = imagefile.FormatByteSize(p.FileSize)
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.Title, category, visibility, size, uploaded)
		} else {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.Title, category, uploaded)
		}
	}
	_ = tw.Flush()
}

// printPhoto writes every field of a single photo.
func printPhoto(w io.Writer, p models.Photo) {
	fmt.Fprintf(w, "#%d %s\n", p.ID, p.Title)
	if p.Description != "" {
		fmt.Fprintf(w, "  %s\n", p.Description)
	}
	fmt.Fprintf(w, "  url:      %s\n", p.ImageURL)
	fmt.Fprintf(w, "  file:     %s", p.FileName)
	if p.FileSize > 0 {
		fmt.Fprintf(w, " (%s)", imagefile.FormatByteSize(p.FileSize))
	}
	fmt.Fprintln(w)
	if len(p.Tags) > 0 {
		fmt.Fprintf(w, "  tags:     %s\n", strings.Join(p.Tags, ", "))
	}
}

func printStats(w io.Writer, s *models.PhotoStats) {
	if s == nil {
		fmt.Fprintln(w, "No statistics yet.")
		return
	}
	printer.Fprintf(w, "Total photos:   %d\n", s.TotalPhotos)
	printer.Fprintf(w, "This month:     %d\n", s.ThisMonthPhotos)
	fmt.Fprintf(w, "Total size:     %s\n", imagefile.FormatByteSize(s.TotalSize))
	fmt.Fprintf(w, "Average size:   %s\n", imagefile.FormatByteSize(int64(s.AverageSize)))
}
