package fetch

// FilenameFromURL exposes filenameFromURL for tests.
var FilenameFromURL = filenameFromURL
