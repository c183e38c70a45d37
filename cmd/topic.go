package cmd

import (
	"context"
	"flag"

	"github.com/etnz/coinfolio/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `coinfolio topic [<topic>...]

  Shows documentation for the given topics, '*' shows them all.
  Without a topic, lists the available ones.
`
}

func (*topicCmd) SetFlags(f *flag.FlagSet) {}

func (*topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{docs.Readme}
	}

	doc, err := docs.GetTopics(topics...)
	if err != nil {
		return fail(err)
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}

func topicNames() []string {
	topics, _ := docs.GetAllTopics()
	return append(topics, docs.Readme)
}
