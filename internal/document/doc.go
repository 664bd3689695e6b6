// Package document adapts gopkg.in/yaml.v3 to the two narrow contracts the
// Taskfile formatter consumes: Parse turns text into an ordered node tree and
// Stringify turns a tree back into text under a fixed set of emit options.
//
// The node tree is the yaml.v3 *yaml.Node model. Mapping order, comments,
// anchors and aliases ride along on the nodes; this package only adds the
// value-kind classification and ordered-mapping helpers the formatter needs.
//
// Dependencies: gopkg.in/yaml.v3.
package document
