package main

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/taigrr/dirdeploy/internal/console"
	"github.com/taigrr/dirdeploy/internal/deploy"
	"github.com/taigrr/dirdeploy/internal/guard"
	"github.com/taigrr/dirdeploy/internal/types"
)

// prepare validates the tool input and returns an engine writing to log
// together with the absolute paths.
func (ts *toolServer) prepare(log *strings.Builder, input DeployInput) (*deploy.Engine, string, string, error) {
	from := strings.TrimSpace(input.From)
	to := strings.TrimSpace(input.To)
	if from == "" || to == "" {
		return nil, "", "", errors.New("dfrom and dto are required")
	}

	printer := console.New(log, ts.borderWidth)
	g := guard.New(printer, guard.FixedPrompter(input.CreateDestination))

	src, dst, err := g.Validate(from, to)
	if err != nil {
		return nil, "", "", err
	}
	return deploy.New(printer, ts.pathFilter), src, dst, nil
}

func (ts *toolServer) handleDeployDir(ctx context.Context, req *mcp.CallToolRequest, input DeployInput) (*mcp.CallToolResult, DeployDirOutput, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	var log strings.Builder
	out := DeployDirOutput{From: input.From, To: input.To}

	engine, src, dst, err := ts.prepare(&log, input)
	if err != nil {
		out.Log = log.String()
		return &mcp.CallToolResult{IsError: true}, out, err
	}
	out.From, out.To = src, dst

	res, err := engine.Run(types.OpFullCopy, src, dst)
	if res.Copy != nil {
		out.Files, out.Dirs = res.Copy.Files, res.Copy.Dirs
	}
	out.Log = log.String()
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, out, err
	}

	out.Success = true
	return nil, out, nil
}

func (ts *toolServer) handleDeployShell(ctx context.Context, req *mcp.CallToolRequest, input DeployInput) (*mcp.CallToolResult, DeployShellOutput, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	var log strings.Builder
	out := DeployShellOutput{From: input.From, To: input.To}

	engine, src, dst, err := ts.prepare(&log, input)
	if err != nil {
		out.Log = log.String()
		return &mcp.CallToolResult{IsError: true}, out, err
	}
	out.From, out.To = src, dst

	res, err := engine.Run(types.OpEmptyShell, src, dst)
	if res.Shell != nil {
		out.Created, out.Skipped = res.Shell.Created, res.Shell.Skipped
	}
	out.Log = log.String()
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, out, err
	}

	out.Success = true
	return nil, out, nil
}
