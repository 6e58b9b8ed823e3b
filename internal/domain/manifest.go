package domain

// fixedManifest is the static list of always-attempted recording assets,
// relative to the session's remote base URL. Order matters: metadata and
// small files first so a watching user sees progress before the large media
// transfers start. Not every session has every asset; 404s are expected.
var fixedManifest = []string{
	"captions.json",
	"cursor.xml",
	"deskshare.xml",
	"presentation/deskshare.png",
	"metadata.xml",
	"panzooms.xml",
	PresentationTextFilename,
	"shapes.svg",
	"slides_new.xml",
	"video/webcams.webm",
	"video/webcams.mp4",
	"deskshare/deskshare.webm",
	"deskshare/deskshare.mp4",
}

// FixedManifest returns the ordered list of always-attempted asset paths.
// The returned slice is a copy; callers may not reorder the manifest.
func FixedManifest() []string {
	out := make([]string, len(fixedManifest))
	copy(out, fixedManifest)
	return out
}
