package pushdown

// Version is the release of the library and CLI.
const Version = "0.1.0"
