// Package cli provides the interactive gallery command-line client.
//
// It wires configuration, the local database, the backend gateway and the
// session and photo stores behind a small REPL. On start the persisted
// administrator session is restored, if any.
//
// Commands
//
//	help                         show available commands
//	gallery | g                  list public photos
//	login                        sign in as administrator
//	logout                       sign out
//	admin                        list every photo and show statistics
//	stats                        show statistics
//	upload <path>                upload an image file
//	update <id>                  edit title, description, category or visibility
//	delete <id>                  delete a photo
//	download <id> [dir]          save the image of a listed photo
//	thumb <id> [dir] [width]     save a JPEG thumbnail of a listed photo
//	whoami                       show the signed-in administrator
//	exit | quit                  leave the program
//
// The REPL is started with App.Run, which blocks until the user exits.
package cli
