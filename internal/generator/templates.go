package generator

// dockerfileTemplateText is the Go template for the generated Dockerfile.
// The build context is the project root, so the COPY of the public key
// reaches into .cj/ssh. The open shim is the container half of the browser
// bridge: it writes its argument URL to the bridge port, which the SSH
// reverse tunnel carries back to the host.
const dockerfileTemplateText = `FROM ubuntu:25.04

ENV DEBIAN_FRONTEND=noninteractive

RUN apt-get update && apt-get install -y \
{{- range .Packages}}
    {{.}} \
{{- end}}
    && rm -rf /var/lib/apt/lists/*

RUN curl -fsSL https://deb.nodesource.com/setup_22.x | bash - \
    && apt-get install -y nodejs \
    && rm -rf /var/lib/apt/lists/*

RUN npm install -g @anthropic-ai/claude-code

RUN mkdir -p /root/.ssh && chmod 700 /root/.ssh
COPY .cj/ssh/id_rsa.pub /root/.ssh/authorized_keys
RUN chmod 600 /root/.ssh/authorized_keys \
    && sed -i 's/#\?PermitRootLogin .*/PermitRootLogin prohibit-password/' /etc/ssh/sshd_config
EXPOSE 22

RUN { \
    echo '#!/bin/bash'; \
    echo 'if [ -n "$1" ]; then'; \
    echo '    echo "$1" > /dev/tcp/localhost/{{.BridgePort}} 2>/dev/null || true'; \
    echo 'fi'; \
    } > /usr/local/bin/open && chmod +x /usr/local/bin/open

RUN { \
    echo '#!/bin/bash'; \
    echo 'mkdir -p /run/sshd'; \
    echo '/usr/sbin/sshd -e'; \
    echo 'exec "$@"'; \
    } > /usr/local/bin/cj-init && chmod +x /usr/local/bin/cj-init

ENTRYPOINT ["/usr/local/bin/cj-init"]
`

// claudeMDTemplate is the default CLAUDE.md written into new projects.
const claudeMDTemplate = `## Modifying Software Projects
- You MUST always validate that a project still builds after making changes.
- You MUST always run linting on a project after making changes.
- You MUST always fix linting errors and warnings.
- You MUST always run available tests on a project after making changes.
- You MUST always fix failing tests.
- You MUST NOT push to a remote git repository before making sure that README.md and Claude.md have been updated according to latest changes.

## Secure Coding
- You MUST NEVER implement logging of secrets like cryptographic keys, API keys, user names, or similar.
- You MUST NEVER add log files to git repositories.

## Documentation, README, Git commit messages
- When committing, always include a verbatim copy of the starting prompt used for this conversation.
- You MUST NOT boast about program features.
- When writing user-oriented documentation, do not talk about technical or architectural details which are irrelevant to the end user.
- Avoid using overly enthusiastic or boastful wording like "comprehensive", "excellent", "greatly" etc. Remain clear and factual.
`
