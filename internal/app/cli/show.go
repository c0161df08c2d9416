package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/anzhiyu-c/anheyu-gistblog/pkg/constant"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/gist"
)

const timeLayout = "2006-01-02 15:04"

func newShowCommand(newService ServiceFactory) *cobra.Command {
	var meta bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "查看单篇文章",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			return runShow(cmd.Context(), cmd.OutOrStdout(), svc, args[0], meta)
		},
	}

	cmd.Flags().BoolVar(&meta, "meta", false, "只显示元信息，不输出正文")
	return cmd
}

func runShow(ctx context.Context, w io.Writer, svc gist.Service, id string, metaOnly bool) error {
	post, err := svc.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, constant.ErrNotFound) {
			return fmt.Errorf("文章 %s 不存在: %w", id, err)
		}
		return fmt.Errorf("获取文章 %s 失败: %w", id, err)
	}

	fmt.Fprintln(w, post.Description)
	fmt.Fprintf(w, "ID:      %s\n", post.ID)
	fmt.Fprintf(w, "URL:     %s\n", post.URL)
	fmt.Fprintf(w, "Created: %s\n", post.CreatedAt.UTC().Format(timeLayout))
	fmt.Fprintf(w, "Updated: %s\n", post.UpdatedAt.UTC().Format(timeLayout))
	fmt.Fprintf(w, "Tags:    %s\n", formatTags(post.Tags))
	fmt.Fprintf(w, "File:    %s\n", post.Filename)

	if metaOnly {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, post.Content)
	return nil
}
