// Package definition describes where questionnaire definitions come from and
// turns loaded documents into question lists. Sources are files, entries of an
// fs.FS, HTTP(S) URLs and S3 objects; remote kinds are disabled unless a
// LoaderOption enables them.
package definition
