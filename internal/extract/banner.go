package extract

// DropPrompt invites the user to drop a photo.
const DropPrompt = "\n\n Drop Image Here \n\n"

// IdleBanner is shown before anything has been dropped.
func IdleBanner() string {
	return DropPrompt + "Initiate"
}

// Banner is the text shown after a file has been processed.
func Banner(name string, r Result) string {
	return "Done: " + name + DropPrompt + r.Narrative
}
