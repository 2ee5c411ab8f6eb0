package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/controleplus/internal/model"
)

// completeIDs returns a completion function for active record ids of kind.
func completeIDs(kind model.Kind) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 || ctx == nil || ctx.Store == nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return itemCompletions(kind, false, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// itemCompletions matches ids, or labels, of the records of kind.
func itemCompletions(kind model.Kind, archived bool, toComplete string) []string {
	var completions []string
	needle := strings.ToLower(toComplete)
	for _, it := range labeledItems(ctx.Store.Snapshot(), kind, archived) {
		if strings.HasPrefix(it.ID, toComplete) || strings.Contains(strings.ToLower(it.Label), needle) {
			completions = append(completions, it.ID+"\t"+it.Label)
		}
	}
	return completions
}

// completeKinds completes the first argument with the kind tags.
func completeKinds(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var completions []string
	for _, k := range model.Kinds {
		if strings.HasPrefix(k.Tag(), toComplete) {
			completions = append(completions, k.Tag()+"\t"+k.Label())
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeKindAndID handles completion for 'archive restore|purge KIND ID'.
func completeKindAndID(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return completeKinds(cmd, args, toComplete)
	case 1:
		kind, err := model.ParseKind(args[0])
		if err != nil || ctx == nil || ctx.Store == nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return itemCompletions(kind, true, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// completeMarkets returns the Crowley market names.
func completeMarkets(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || ctx == nil || ctx.Store == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var completions []string
	for _, m := range ctx.Store.Markets() {
		if strings.HasPrefix(strings.ToLower(m), strings.ToLower(toComplete)) {
			completions = append(completions, m)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeSubmissions returns the ids of submissions waiting for review.
func completeSubmissions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || ctx == nil || ctx.Store == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var completions []string
	for _, s := range ctx.Store.Submissions() {
		if strings.HasPrefix(s.SubmissionID, toComplete) {
			completions = append(completions, s.SubmissionID+"\t"+s.Name+" ("+s.City+"/"+s.State+")")
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
