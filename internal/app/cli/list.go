/*
 * @Description: list 命令：列出已发布文章与标签汇总
 * @Author: 安知鱼
 * @Date: 2026-02-18 21:03:52
 * @LastEditTime: 2026-02-28 11:14:40
 * @LastEditors: 安知鱼
 */
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/anzhiyu-c/anheyu-gistblog/internal/pkg/strutil"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-gistblog/pkg/service/gist"
)

// 表格中描述列的最大字符数
const descriptionWidth = 40

type listOptions struct {
	tag      string
	showTags bool
	json     bool
}

func newListCommand(newService ServiceFactory) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "列出已发布的文章",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			return runList(cmd.Context(), cmd.OutOrStdout(), svc, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.tag, "tag", "t", "", "只列出带有该标签的文章（区分大小写）")
	cmd.Flags().BoolVar(&opts.showTags, "tags", false, "显示标签汇总")
	cmd.Flags().BoolVar(&opts.json, "json", false, "以 JSON 格式输出")
	return cmd
}

func runList(ctx context.Context, w io.Writer, svc gist.Service, opts listOptions) error {
	if opts.showTags {
		return listTags(ctx, w, svc)
	}

	var (
		posts []model.Post
		err   error
	)
	if opts.tag != "" {
		posts, err = svc.PostsByTag(ctx, opts.tag)
	} else {
		posts, err = svc.ListPosts(ctx)
	}
	if err != nil {
		return fmt.Errorf("获取文章列表失败: %w", err)
	}

	if opts.json {
		summaries := make([]model.PostSummary, 0, len(posts))
		for _, p := range posts {
			summaries = append(summaries, p.Summary())
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	if len(posts) == 0 {
		if opts.tag != "" {
			fmt.Fprintf(w, "No posts found with tag #%s\n", opts.tag)
			return nil
		}
		fmt.Fprintln(w, "No posts found")
		return nil
	}

	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []string{
			p.ID,
			p.CreatedAt.UTC().Format("2006-01-02"),
			p.Filename,
			formatTags(p.Tags),
			shorten(p.Description, descriptionWidth),
		})
	}
	renderTable(w, []string{"ID", "CREATED", "FILE", "TAGS", "DESCRIPTION"}, rows)
	return nil
}

func listTags(ctx context.Context, w io.Writer, svc gist.Service) error {
	counts, err := svc.Tags(ctx)
	if err != nil {
		return fmt.Errorf("获取标签失败: %w", err)
	}
	if len(counts) == 0 {
		fmt.Fprintln(w, "No tags found")
		return nil
	}

	fmt.Fprintln(w, "Tags:")
	for _, c := range counts {
		fmt.Fprintf(w, "  #%-20s (%d posts)\n", c.Name, c.Count)
	}
	return nil
}

func renderTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
	table.Header(header)
	table.Bulk(rows)
	table.Render()
}

func formatTags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return "#" + strings.Join(tags, " #")
}

// shorten 按字符截断，超出时追加 "..."
func shorten(s string, n int) string {
	if strutil.Len(s) <= n {
		return s
	}
	return strutil.Head(s, n) + "..."
}
