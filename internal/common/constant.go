// Package common holds small values shared by the client packages.
package common

// AppName identifies the client to the backend and names its data files.
const AppName = "gallerykeeper"
