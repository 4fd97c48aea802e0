package admin

// Notice is the short feedback shown after an edit or a save.
type Notice struct {
	Title       string
	Description string
	Destructive bool
}

const (
	titleSuccess = "Success!"
	titleError   = "Error"
	titlePartial = "Partial Success"

	reminder = " Don't forget to save!"
)

func success(what string) Notice {
	return Notice{Title: titleSuccess, Description: what + reminder}
}

func failure(description string) Notice {
	return Notice{Title: titleError, Description: description, Destructive: true}
}
